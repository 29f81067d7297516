package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade2048/internal/grid"
)

const tileWidth = 7

// tileColors maps tile values to a background color.
var tileColors = map[int]lipgloss.Color{
	0:    lipgloss.Color("237"),
	2:    lipgloss.Color("230"),
	4:    lipgloss.Color("223"),
	8:    lipgloss.Color("215"),
	16:   lipgloss.Color("209"),
	32:   lipgloss.Color("203"),
	64:   lipgloss.Color("196"),
	128:  lipgloss.Color("228"),
	256:  lipgloss.Color("227"),
	512:  lipgloss.Color("226"),
	1024: lipgloss.Color("220"),
	2048: lipgloss.Color("214"),
}

var (
	tileBase = lipgloss.NewStyle().
			Width(tileWidth).
			Align(lipgloss.Center).
			Bold(true)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// tileStyle returns the style for a tile value.
func tileStyle(v int) lipgloss.Style {
	bg, ok := tileColors[v]
	if !ok {
		bg = lipgloss.Color("93")
	}
	fg := lipgloss.Color("235")
	if v >= 8 {
		fg = lipgloss.Color("231")
	}
	return tileBase.Background(bg).Foreground(fg)
}

// renderTile draws one tile as a three line block.
func renderTile(v int) string {
	label := ""
	if v != 0 {
		label = strconv.Itoa(v)
	}
	st := tileStyle(v)
	blank := st.Render("")
	return lipgloss.JoinVertical(lipgloss.Left, blank, st.Render(label), blank)
}

// RenderGrid draws g with colored tiles.
func RenderGrid(g grid.Grid) string {
	rows := make([]string, len(g))
	for r, row := range g {
		cells := make([]string, len(row))
		for c, v := range row {
			cells[c] = renderTile(v)
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderPlain draws g as aligned text without colors.
func RenderPlain(g grid.Grid) string {
	width := len(strconv.Itoa(max(grid.MaxTile(g), 2)))
	var b strings.Builder
	for r, row := range g {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, v := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			fmt.Fprintf(&b, "%*s", width, cell)
		}
	}
	return b.String()
}

// centerText pads s so it is centered in width.
func centerText(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
