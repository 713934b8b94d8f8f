package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/termgame/internal/core"
)

// lipglossColor converts a core color to a lipgloss 256-color value. The
// second result is false for the terminal default.
func lipglossColor(c core.Color) (lipgloss.Color, bool) {
	n := c.ANSI256()
	if n < 0 {
		return "", false
	}
	return lipgloss.Color(strconv.Itoa(n)), true
}

// styleCache memoizes lipgloss styles per core style; RenderScreen runs
// every frame and most screens use a handful of styles.
type styleCache map[core.Style]lipgloss.Style

func (c styleCache) get(st core.Style) lipgloss.Style {
	if s, ok := c[st]; ok {
		return s
	}
	s := lipgloss.NewStyle().Bold(st.Bold).Reverse(st.Inverted)
	if fg, ok := lipglossColor(st.Fg); ok {
		s = s.Foreground(fg)
	}
	if bg, ok := lipglossColor(st.Bg); ok {
		s = s.Background(bg)
	}
	c[st] = s
	return s
}

var styles = styleCache{}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Style

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Style != start {
					break
				}
				r := cell.Rune
				if cell.Transparent() {
					r = ' '
				}
				run.WriteRune(r)
				x++
			}

			if start == core.DefaultStyle {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start).Render(run.String()))
		}
	}
	return sb.String()
}

// overlayLine replaces line y of a rendered screen with text centered in
// width. Out of range lines leave the view unchanged.
func overlayLine(view string, y, width int, text string) string {
	lines := strings.Split(view, "\n")
	if y < 0 || y >= len(lines) {
		return view
	}
	lines[y] = centerText(text, width)
	return strings.Join(lines, "\n")
}
