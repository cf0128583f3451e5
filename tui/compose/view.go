package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/terminalwall/domain"
	"github.com/CrestNiraj12/terminalwall/tui/common"
)

const (
	thumbW = 8
	thumbH = 4
)

// View renders the composer box.
func (m Model) View() string {
	if m.picking {
		return m.pickerView()
	}

	var b strings.Builder
	b.WriteString(m.textarea.View())

	if len(m.pending) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.attachmentsView())
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())

	style := common.ComposerStyle
	if m.Focused() {
		style = common.ComposerFocusedStyle
	}
	return style.Width(m.width - 2).Render(b.String())
}

func (m Model) attachmentsView() string {
	cells := make([]string, 0, len(m.pending))
	for i, uri := range m.pending {
		label := common.TimestampStyle.Render(fmt.Sprintf(" #%d ", i+1))
		if m.attachFocus && i == m.attachCursor {
			label = common.ErrorStyle.Render(" x remove ")
		}
		cell := lipgloss.JoinVertical(lipgloss.Center, m.thumbs.Thumbnail(uri, thumbW, thumbH), label)
		cells = append(cells, cell, " ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) footerView() string {
	counter := common.TimestampStyle.Render(
		fmt.Sprintf("%d/%d", domain.BodyLength(m.textarea.Value()), domain.MaxBodyRunes))

	button := common.ButtonDisabledStyle.Render("Share")
	if m.CanShare() {
		button = common.ButtonStyle.Render("Share")
	}
	if m.submitting {
		button = common.ButtonDisabledStyle.Render("Sharing...")
	}

	hint := "Attach: Photo (ctrl+o) · ctrl+e editor"
	if m.status != "" {
		hint = m.status
	}
	room := m.width - 8 - lipgloss.Width(counter) - lipgloss.Width(button)
	if room < 1 {
		room = 1
	}
	left := common.TimestampStyle.Render(ansi.Truncate(hint, room, "…")) + "  " + counter
	gap := m.width - 4 - lipgloss.Width(left) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + button
}

func (m Model) pickerView() string {
	var b strings.Builder
	b.WriteString(common.BoxTitleStyle.Render("Attach a photo"))
	b.WriteString("\n")
	b.WriteString(common.TimestampStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(common.ErrorStyle.Render(m.status))
	} else {
		b.WriteString(common.TimestampStyle.Render("enter: attach · esc: cancel"))
	}
	return common.ComposerFocusedStyle.Width(m.width - 2).Render(b.String())
}
