package feed

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalwall/domain"
	"github.com/CrestNiraj12/terminalwall/tui/common"
)

const (
	avatarW = 4
	avatarH = 2
	imageW  = 16
	imageH  = 8
)

// View renders the wall: the RECENT ACTIVITY heading and as many post
// cards as fit, keeping the highlighted one on screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.ActivityStyle.Render("RECENT ACTIVITY"))
	if m.loading {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(common.ErrorStyle.Render("Couldn't load the wall: "+m.err.Error()) + "\n")
	}

	if len(m.posts) == 0 {
		if !m.loading {
			b.WriteString(common.TimestampStyle.Render("Nothing on the wall yet."))
		}
		return b.String()
	}

	cards := make([]string, len(m.posts))
	heights := make([]int, len(m.posts))
	for i, p := range m.posts {
		cards[i] = m.renderCard(i, p)
		heights[i] = lipgloss.Height(cards[i])
	}
	avail := m.height - lipgloss.Height(b.String())
	start, end := visibleWindow(heights, m.cursor, avail)
	b.WriteString(strings.Join(cards[start:end], "\n"))
	if end < len(cards) {
		b.WriteString("\n" + common.TimestampStyle.Render("↓ more"))
	}
	return b.String()
}

// visibleWindow returns the card range [start, end) that fits in avail lines
// and contains cursor. The topmost cards are preferred.
func visibleWindow(heights []int, cursor, avail int) (int, int) {
	if len(heights) == 0 {
		return 0, 0
	}
	cursor = clamp(cursor, 0, len(heights)-1)
	start := 0
	for start < cursor && sum(heights[start:cursor+1]) > avail {
		start++
	}
	end := cursor + 1
	for end < len(heights) && sum(heights[start:end+1]) <= avail {
		end++
	}
	return start, end
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

func (m Model) renderCard(i int, p domain.Post) string {
	inner := m.width - 4
	if inner < 20 {
		inner = 20
	}

	avatar := ""
	if m.avatar != "" {
		avatar = m.thumbs.Thumbnail(m.avatar, avatarW, avatarH) + " "
	}
	meta := common.AuthorStyle.Render(p.AuthorName) + "\n" +
		common.TimestampStyle.Render(common.FormatTimestamp(p.CreatedAt, m.now()))
	dots := common.TimestampStyle.Render("···")
	left := lipgloss.JoinHorizontal(lipgloss.Top, avatar, meta)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(dots)
	if gap < 1 {
		gap = 1
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), dots)

	parts := []string{header}
	if m.openMenu == i {
		menu := common.MenuStyle.Render("Remove Post")
		parts = append(parts, lipgloss.PlaceHorizontal(inner, lipgloss.Right, menu))
	}
	if strings.TrimSpace(p.Body) != "" {
		parts = append(parts, common.ContentStyle.Width(inner).Render(p.Body))
	}
	if len(p.Images) > 0 {
		parts = append(parts, m.renderImages(p.Images, inner))
	}

	style := common.UnselectedStyle
	if m.focused && i == m.cursor {
		style = common.SelectedStyle
	}
	return style.Width(inner + 2).Render(strings.Join(parts, "\n"))
}

// renderImages lays thumbnails out left to right, wrapping to new rows.
func (m Model) renderImages(images []string, width int) string {
	perRow := width / (imageW + 1)
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for startIdx := 0; startIdx < len(images); startIdx += perRow {
		endIdx := min(startIdx+perRow, len(images))
		cells := make([]string, 0, 2*(endIdx-startIdx))
		for _, uri := range images[startIdx:endIdx] {
			cells = append(cells, m.thumbs.Thumbnail(uri, imageW, imageH), " ")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}
