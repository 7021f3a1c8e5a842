package feed

import (
	"fmt"
	"strings"

	feedctl "github.com/CrestNiraj12/terminalfeed/app/feed"
	"github.com/CrestNiraj12/terminalfeed/domain"
	"github.com/CrestNiraj12/terminalfeed/tui/common"
)

const (
	cardHeight     = 4 // 2 content lines + 2 border
	reservedLines  = 9 // header, search box, footer, status bar
	skeletonCards  = 3
	defaultVisible = 5
	maxCardWidth   = 76
)

// View renders the feed as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("📰 TerminalFeed")
	tagline := common.TaglineStyle.Render("<scroll the feed without leaving the terminal>")
	b.WriteString(title + tagline + "\n\n")
	b.WriteString(common.SearchStyle.Render(m.input.View()) + "\n\n")

	switch m.ctl.Presentation() {
	case feedctl.ListSkeleton:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
		b.WriteString(m.renderSkeleton())
	case feedctl.ListFailed:
		b.WriteString(common.ErrorStyle.Render("  " + feedctl.UserMessage(m.ctl.Err())))
		b.WriteString("\n\n  Press r to retry.\n")
	case feedctl.ListNoResults:
		b.WriteString(fmt.Sprintf("  No posts match %q.\n", m.ctl.SearchQuery()))
		b.WriteString(common.TimestampStyle.Render("  Press esc to clear the search."))
		b.WriteString("\n")
	case feedctl.ListEmpty:
		b.WriteString("  No posts yet.\n")
	case feedctl.ListItems:
		b.WriteString(m.renderList())
	}

	b.WriteString(m.renderFooter())
	b.WriteString(common.StatusBarStyle.Render(m.hints()))
	return b.String()
}

func (m Model) renderList() string {
	items := m.ctl.FilteredItems()
	start := min(max(m.startIndex, 0), max(len(items)-1, 0))
	end := min(start+m.visibleCount(), len(items))

	var b strings.Builder
	for i := start; i < end; i++ {
		card := renderCard(items[i], m.cardWidth())
		if i == m.cursor {
			b.WriteString(common.SelectedStyle.Render(card))
		} else {
			b.WriteString(common.UnselectedStyle.Render(card))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCard(p domain.Post, width int) string {
	title := common.TitleStyle.Render(common.Truncate(p.Title, width))
	meta := fmt.Sprintf("%s  %s  %s",
		common.AuthorStyle.Render("@"+p.Author),
		common.MetadataStyle.Render(fmt.Sprintf("♡ %d  💬 %d", p.LikeCount, p.CommentCount)),
		common.TimestampStyle.Render(p.CreatedAt.Format("Jan 02 15:04")))
	return title + "\n" + common.ClampLines(meta, width)
}

func (m Model) renderSkeleton() string {
	w := m.cardWidth()
	bar := common.SkeletonStyle.Render(strings.Repeat("░", w))
	short := common.SkeletonStyle.Render(strings.Repeat("░", w/2))
	var b strings.Builder
	for range skeletonCards {
		b.WriteString(common.UnselectedStyle.Render(bar + "\n" + short))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	switch m.ctl.Footer() {
	case feedctl.FooterLoading:
		return common.FooterStyle.Render(m.spinner.View()+" Loading more...") + "\n"
	case feedctl.FooterRetry:
		msg := common.ErrorStyle.Render(feedctl.UserMessage(m.ctl.Err()))
		return common.FooterStyle.Render(msg+"  r: retry") + "\n"
	case feedctl.FooterEnd:
		return common.FooterStyle.Render("· You've reached the end ·") + "\n"
	}
	return ""
}

func (m Model) hints() string {
	if m.input.Focused() {
		return common.Hints("enter: search now", "esc: clear")
	}
	if !m.showHints {
		return common.Hints("j/k: move", "enter: open", "/: search", "?: more", "q: quit")
	}
	return common.Hints("j/k: move", "g: top", "enter: open", "/: search",
		"esc: clear search", "r: retry", "R: refresh", "q: quit")
}

func (m Model) visibleCount() int {
	if m.height <= 0 {
		return defaultVisible
	}
	return max((m.height-reservedLines)/cardHeight, 1)
}

func (m Model) cardWidth() int {
	if m.width <= 0 {
		return maxCardWidth - 4
	}
	return max(min(m.width, maxCardWidth)-4, 12)
}

