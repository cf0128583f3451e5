package profile

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalwall/tui/common"
)

// SidebarView renders the left column: photo, links, info and friends.
func (m Model) SidebarView(width int) string {
	inner := width - 4
	if inner < 12 {
		inner = 12
	}
	photo := m.thumbs.Thumbnail(m.image, inner, inner/2)

	links := []string{
		"View Photos of Me (12)",
		"View Videos of Me",
		"Edit My Profile",
		"Write a Note",
		"Send Message",
	}
	var lb strings.Builder
	for i, l := range links {
		if i > 0 {
			lb.WriteString("\n")
		}
		lb.WriteString(common.LinkStyle.Render(l))
	}
	if m.status != "" {
		lb.WriteString("\n" + common.ErrorStyle.Render(m.status))
	}
	lb.WriteString("\n" + common.TimestampStyle.Render("p: change photo"))

	info := box(inner, "Information",
		label("Networks:", "Wall Alumni"),
		label("Birthday:", "December 14"),
		label("Current City:", "Palo Alto, CA"),
	)
	friends := box(inner, "Mutual Friends",
		common.TimestampStyle.Render("You have no mutual friends."),
	)

	return lipgloss.NewStyle().Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, photo, "", lb.String(), "", info, friends))
}

// PickerView renders the photo picker overlay.
func (m Model) PickerView(width int) string {
	var b strings.Builder
	b.WriteString(common.BoxTitleStyle.Render("Change profile photo"))
	b.WriteString("\n")
	b.WriteString(common.TimestampStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(common.ErrorStyle.Render(m.status))
	} else {
		b.WriteString(common.TimestampStyle.Render("enter: choose · esc: cancel"))
	}
	return common.ComposerFocusedStyle.Width(width - 2).Render(b.String())
}

// WarningView renders the blocking notification.
func (m Model) WarningView(width int) string {
	w := min(width-4, 56)
	body := common.ErrorStyle.Render(m.warning) + "\n\n" +
		common.TimestampStyle.Render("enter: OK")
	return common.DialogStyle.Width(w).Render(body)
}

// AdsView renders the right column of sponsored boxes.
func AdsView(width int) string {
	inner := width - 4
	if inner < 12 {
		inner = 12
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		box(inner, "Sponsored",
			common.LinkStyle.Render("Learn the Terminal"),
			common.ContentStyle.Width(inner).Render("Master the shell in just 30 days. Sign up today!"),
		),
		box(inner, "Sponsored",
			common.LinkStyle.Render("Retro Keyboards"),
			common.ContentStyle.Width(inner).Render("Clicky switches for people who still use vi."),
		),
	)
}

func box(inner int, title string, lines ...string) string {
	body := common.BoxTitleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return common.BoxStyle.Width(inner + 2).Render(body)
}

func label(k, v string) string {
	return common.TimestampStyle.Render(k) + " " + common.ContentStyle.Render(v)
}
