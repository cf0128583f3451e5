package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/terminalwall/tui/common"
	"github.com/CrestNiraj12/terminalwall/tui/profile"
)

const (
	leftWidth      = 30
	rightWidth     = 26
	minCenterWidth = 44
	chromeLines    = 4 // nav bar, padded status bar and hint line
	pickerChrome   = 7 // border, title, directory, gap and hint around the file list
)

// columns decides which side columns fit next to the wall.
func (a App) columns() (left, center, right int) {
	center = a.width
	if center-leftWidth-1 >= minCenterWidth {
		left = leftWidth
		center -= left + 1
	}
	if center-rightWidth-1 >= minCenterWidth {
		right = rightWidth
		center -= right + 1
	}
	return left, center, right
}

func (a App) resize() App {
	_, center, _ := a.columns()
	a.compose = a.compose.SetWidth(center).SetPickerHeight(a.pickerHeight())
	a.profile = a.profile.SetPickerHeight(a.pickerHeight())
	a.feed = a.feed.SetSize(center, a.feedHeight(center))
	return a
}

// pickerHeight is the number of file rows a picker overlay can list.
func (a App) pickerHeight() int {
	return max(a.height-chromeLines-pickerChrome, 3)
}

func (a App) feedHeight(center int) int {
	used := chromeLines + lipgloss.Height(a.headerView(center)) + lipgloss.Height(a.compose.View()) + 1
	if h := a.height - used; h > 4 {
		return h
	}
	return 4
}

// View renders the page.
func (a App) View() string {
	left, center, right := a.columns()

	var mid string
	switch {
	case a.profile.Picking():
		mid = a.profile.PickerView(center)
	default:
		f := a.feed.SetSize(center, a.feedHeight(center))
		mid = lipgloss.JoinVertical(lipgloss.Left,
			a.headerView(center),
			a.compose.View(),
			"",
			f.View(),
		)
	}
	mid = lipgloss.NewStyle().Width(center).Render(mid)

	cols := make([]string, 0, 5)
	if left > 0 {
		cols = append(cols, a.profile.SidebarView(left), " ")
	}
	cols = append(cols, mid)
	if right > 0 {
		cols = append(cols, " ", profile.AdsView(right))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	page := lipgloss.JoinVertical(lipgloss.Left, a.navView(), body, a.statusView(), a.hintView())
	if a.profile.Blocking() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.profile.WarningView(a.width))
	}
	return page
}

func (a App) navView() string {
	brand := common.BrandStyle.Render("wall")
	links := common.NavStyle.Render("home  profile  friends  inbox ") + common.BadgeStyle.Render("11")
	right := common.NavStyle.Render(a.deps.User.Name + "  settings  logout")
	gap := a.width - lipgloss.Width(brand) - lipgloss.Width(links) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	bar := brand + links + common.NavStyle.Render(strings.Repeat(" ", gap)) + right
	return common.NavStyle.Width(a.width).Render(ansi.Truncate(bar, max(a.width-2, 1), ""))
}

func (a App) headerView(width int) string {
	name := common.NameStyle.Render(a.deps.User.Name)
	tabs := common.TabActiveStyle.Render("Wall") + "  " +
		common.TabStyle.Render("Info") + "  " +
		common.TabStyle.Render("Photos")
	return lipgloss.NewStyle().Width(width).Render(name + "\n" + tabs)
}

func (a App) statusView() string {
	if a.status == "" {
		return common.StatusBarStyle.Render(" ")
	}
	if a.statusErr {
		return common.StatusBarStyle.Render(common.ErrorStyle.Render(a.status))
	}
	return common.StatusBarStyle.Render(a.status)
}

func (a App) hintView() string {
	var hints []string
	if a.focus == focusCompose {
		hints = []string{"ctrl+d share", "ctrl+o photo", "ctrl+e editor", "tab attachments", "esc done"}
	} else {
		hints = []string{"i write", "j/k move", "m options", "r refresh", "p photo", "q quit"}
	}
	if !a.showHints {
		hints = append(hints[:2:2], "? more")
	}
	return common.TimestampStyle.Render(strings.Join(hints, " · "))
}
