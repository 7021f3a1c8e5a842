package detail

import (
	"fmt"
	"strings"

	detailctl "github.com/CrestNiraj12/terminalfeed/app/detail"
	feedctl "github.com/CrestNiraj12/terminalfeed/app/feed"
	"github.com/CrestNiraj12/terminalfeed/domain"
	"github.com/CrestNiraj12/terminalfeed/tui/common"
)

const maxBodyWidth = 76

// View renders the detail view as a string.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Padding(1, 0, 0, 1).Render("📰 TerminalFeed"))
	b.WriteString("\n\n")

	s := m.session
	switch s.State() {
	case detailctl.StateLoading:
		b.WriteString(fmt.Sprintf("  %s Loading post...\n", m.spinner.View()))
	case detailctl.StateFailed:
		b.WriteString(common.ErrorStyle.Render("  " + feedctl.UserMessage(s.Err())))
		b.WriteString("\n\n  Press r to retry, esc to go back.\n")
	case detailctl.StateNotFound:
		b.WriteString(common.ErrorStyle.Render("  " + feedctl.UserMessage(s.Err())))
		b.WriteString("\n\n  Press esc to go back.\n")
	case detailctl.StateReady:
		b.WriteString(m.renderPost())
		b.WriteString("\n")
		b.WriteString(m.renderComments())
		b.WriteString("\n")
		b.WriteString(m.composer.View())
	}

	if m.status != "" {
		b.WriteString("\n" + common.StatusBarStyle.Render("  "+m.status))
	}
	b.WriteString("\n" + common.StatusBarStyle.Render(m.hints()))
	return b.String()
}

func (m Model) renderPost() string {
	d := m.session.Detail()
	w := m.bodyWidth()

	like := common.MetadataStyle.Render(fmt.Sprintf("♡ %d", m.session.LikeCount()))
	if m.session.Liked() {
		like = common.LikeActiveStyle.Render(fmt.Sprintf("♥ %d", m.session.LikeCount()))
	}
	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, common.TagStyle.Render(t))
	}

	var b strings.Builder
	b.WriteString(" " + common.TitleStyle.Render(common.Truncate(d.Title, w)) + "\n")
	b.WriteString(fmt.Sprintf(" %s  %s\n\n",
		common.AuthorStyle.Render("@"+d.Author),
		common.TimestampStyle.Render(d.CreatedAt.Format("Jan 02 15:04"))))
	body := common.ContentStyle.Width(w).Render(d.Content)
	for _, ln := range strings.Split(body, "\n") {
		b.WriteString(" " + ln + "\n")
	}
	if len(tags) > 0 {
		b.WriteString("\n " + strings.Join(tags, " ") + "\n")
	}
	b.WriteString(fmt.Sprintf("\n %s  %s\n", like,
		common.MetadataStyle.Render(fmt.Sprintf("💬 %d", m.session.CommentCount()))))
	return b.String()
}

func (m Model) renderComments() string {
	th := m.session.Thread()
	list := th.Comments()
	stats := th.Stats()
	if !stats.HasComments {
		return common.TimestampStyle.Render("  No comments yet. Press c to start the conversation.") + "\n"
	}

	var b strings.Builder
	b.WriteString(common.MetadataStyle.Render(
		fmt.Sprintf("  Comments · %d shown · ♡ %d", stats.Total, stats.TotalLikes)))
	b.WriteString("\n")
	for i, c := range list {
		b.WriteString(m.renderComment(c, i == m.cursor, th.Own(c.ID)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderComment(c domain.Comment, selected, own bool) string {
	w := m.bodyWidth()
	like := common.MetadataStyle.Render(fmt.Sprintf("♡ %d", c.LikeCount))
	if c.Liked {
		like = common.LikeActiveStyle.Render(fmt.Sprintf("♥ %d", c.LikeCount))
	}
	head := fmt.Sprintf("%s %s  %s  %s", c.Avatar(),
		common.AuthorStyle.Render(c.Author),
		common.TimestampStyle.Render(c.CreatedAt.Format("Jan 02 15:04")),
		like)
	if c.ReplyTo != nil {
		head += common.ReplyBannerStyle.Render("  ↩ @" + c.ReplyTo.Author)
	}
	if own {
		head += common.SuccessStyle.Render(" (you)")
	}
	body := common.ContentStyle.Width(w - 4).Render(c.Content)
	card := common.ClampLines(head, w-4) + "\n" + body
	if selected {
		return common.SelectedStyle.Render(card)
	}
	return common.UnselectedStyle.Render(card)
}

func (m Model) hints() string {
	switch {
	case m.composer.Focused():
		if m.editor != nil {
			return common.Hints("ctrl+d: post", "ctrl+e: $EDITOR", "esc: cancel")
		}
		return common.Hints("ctrl+d: post", "esc: cancel")
	case m.session.State() == detailctl.StateFailed:
		return common.Hints("r: retry", "esc: back")
	case m.session.State() != detailctl.StateReady:
		return common.Hints("esc: back")
	}
	return common.Hints("l: like", "j/k: select", "L: like comment", "c: comment",
		"ctrl+r: reply", "d: delete own", "esc: back")
}

func (m Model) bodyWidth() int {
	if m.width <= 0 {
		return maxBodyWidth - 4
	}
	return max(min(m.width, maxBodyWidth)-4, 16)
}
