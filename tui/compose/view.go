package compose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/CrestNiraj12/terminalfeed/domain"
	"github.com/CrestNiraj12/terminalfeed/tui/common"
)

// View renders the composer with its reply banner and character counter.
func (m Model) View() string {
	var b strings.Builder
	if m.replyTo != "" {
		b.WriteString(common.ReplyBannerStyle.Render("  ↩ Replying to @" + m.replyTo))
		b.WriteString("\n")
	}
	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(common.StatusBarStyle.Render("  " + m.status))
		return b.String()
	}
	hint := "ctrl+d: post • esc: cancel"
	if !m.textarea.Focused() {
		hint = "c: comment • ctrl+r: reply"
	}
	b.WriteString(common.StatusBarStyle.Render(
		fmt.Sprintf("  %s • %d/%d chars",
			hint, utf8.RuneCountInString(m.textarea.Value()), domain.MaxCommentLength),
	))
	return b.String()
}
