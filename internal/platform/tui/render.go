package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorplace/internal/games/colorplace"
)

// Board layout. The board panel is drawn at the left edge below a one-line
// header and a blank line, inside a rounded border with one column of padding.
const (
	cellW        = 6
	cellH        = 2
	boardOriginX = 2 // border + padding
	boardOriginY = 3 // header + blank + border
)

// colorStyles maps tile colors to lipgloss styles.
var colorStyles = map[colorplace.Color]lipgloss.Style{
	colorplace.ColorNone: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	colorplace.C1:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	colorplace.C2:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	colorplace.C3:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	colorplace.C4:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	colorplace.C5:        lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	colorplace.C6:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	colorplace.C7:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func styleFor(c colorplace.Color) lipgloss.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return colorStyles[colorplace.ColorNone]
}

// boardView carries the per-frame decorations of the board.
type boardView struct {
	cursor     colorplace.Coord
	showCursor bool
	targets    []colorplace.Coord // Cells the active mode accepts
	flash      []colorplace.Coord // Cells touched by the last event
}

// renderBoard draws the 5x5 grid without its border.
func renderBoard(b colorplace.Board, v boardView) string {
	var sb strings.Builder
	for r := range colorplace.BoardSize {
		for line := range cellH {
			if r > 0 || line > 0 {
				sb.WriteByte('\n')
			}
			for c := range colorplace.BoardSize {
				sb.WriteString(renderCell(b, colorplace.At(r, c), line, v))
			}
		}
	}
	return sb.String()
}

func renderCell(b colorplace.Board, pos colorplace.Coord, line int, v boardView) string {
	cell := b.At(pos)
	target := slices.Contains(v.targets, pos)

	var body string
	style := dimStyle
	switch {
	case cell.Filled && cell.Void:
		body = "░░░░"
		style = styleFor(cell.Color)
	case cell.Filled:
		body = "████"
		style = styleFor(cell.Color)
	case target:
		body = " ·· "
		style = targetStyle
	default:
		body = "    "
	}
	if cell.Filled && slices.Contains(v.flash, pos) {
		style = style.Reverse(true)
	}
	body = style.Render(body)

	left, right := " ", " "
	if v.showCursor && pos == v.cursor {
		if line == 0 {
			left, right = cursorStyle.Render("┌"), cursorStyle.Render("┐")
		} else {
			left, right = cursorStyle.Render("└"), cursorStyle.Render("┘")
		}
	} else if target && cell.Filled && line == 0 {
		left, right = targetStyle.Render("·"), targetStyle.Render("·")
	}
	return left + body + right
}

// cellAt maps a mouse position to a board cell.
func cellAt(x, y int) (colorplace.Coord, bool) {
	x -= boardOriginX
	y -= boardOriginY
	if x < 0 || y < 0 {
		return colorplace.Coord{}, false
	}
	pos := colorplace.At(y/cellH, x/cellW)
	return pos, pos.InBounds()
}

// renderSwatch draws a two-character color sample, "??" for colorless tiles.
func renderSwatch(c colorplace.Color) string {
	if c == colorplace.ColorNone {
		return styleFor(c).Render("??")
	}
	return styleFor(c).Render("██")
}

// placementRule describes where a tile may go, with 1-based indices.
func placementRule(t colorplace.Tile) string {
	switch t.Shape {
	case colorplace.ShapeLine:
		if t.Dir == colorplace.DirRow {
			return fmt.Sprintf("row %d", t.Index+1)
		}
		return fmt.Sprintf("column %d", t.Index+1)
	case colorplace.ShapeCross:
		return fmt.Sprintf("cross %d", t.Index+1)
	default:
		return "anywhere"
	}
}

// renderTile draws one queue entry. The front tile also shows its skill text.
func renderTile(t colorplace.Tile, front bool) string {
	var sb strings.Builder
	sb.WriteString(renderSwatch(t.Color))
	sb.WriteString(" ")
	sb.WriteString(placementRule(t))
	if def, ok := colorplace.LookupSkill(t.Skill); ok {
		sb.WriteString(" ")
		sb.WriteString(targetStyle.Render("[" + def.Name + "]"))
		if front {
			sb.WriteString("\n   ")
			sb.WriteString(labelStyle.Render(def.Description))
		}
	}
	return sb.String()
}

// renderMission draws the mission shape as a small grid.
func renderMission(m colorplace.Mission) string {
	rows, cols := 0, 0
	for _, c := range m.Cells {
		rows = max(rows, c.R+1)
		cols = max(cols, c.C+1)
	}
	var sb strings.Builder
	for r := range rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range cols {
			if slices.Contains(m.Cells, colorplace.At(r, c)) {
				sb.WriteString(targetStyle.Render("■ "))
			} else {
				sb.WriteString(dimStyle.Render("· "))
			}
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
