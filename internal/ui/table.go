package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column is a table column. Width 0 sizes the column to its widest cell.
type Column struct {
	Title string
	Width int
	Right bool
}

// Row is one line of cells.
type Row []string

// Table renders fixed-width columns for wallet lists and RPC probe results.
type Table struct {
	Columns []Column
	Rows    []Row
	SelIdx  int // -1 = none
}

// NewTable returns an empty table with no selection.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols, SelIdx: -1}
}

// AddRow appends a row.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

func (t *Table) widths() []int {
	w := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		if c.Width > 0 {
			w[i] = c.Width
			continue
		}
		w[i] = lipgloss.Width(c.Title)
		for _, r := range t.Rows {
			if i < len(r) && lipgloss.Width(r[i]) > w[i] {
				w[i] = lipgloss.Width(r[i])
			}
		}
	}
	return w
}

// Render returns the table as a string. Cells are padded before styling so
// ANSI sequences never count toward the width.
func (t *Table) Render() string {
	var sb strings.Builder
	widths := t.widths()

	header := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cell := lipgloss.NewStyle().Foreground(ColorValue)

	line := func(vals func(i int) string, style func(i int) lipgloss.Style) {
		parts := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			parts[i] = style(i).Render(fit(vals(i), widths[i], c.Right))
		}
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteString("\n")
	}

	line(func(i int) string { return t.Columns[i].Title },
		func(int) lipgloss.Style { return header })
	line(func(i int) string { return strings.Repeat("-", widths[i]) },
		func(int) lipgloss.Style { return StyleDim })

	for ri, r := range t.Rows {
		st := cell
		if ri == t.SelIdx {
			st = StyleSelected
		}
		line(func(i int) string {
			if i < len(r) {
				return r[i]
			}
			return ""
		}, func(int) lipgloss.Style { return st })
	}
	return sb.String()
}

// fit pads or truncates s to exactly width cells. Styled cells are padded
// but never cut, since that could split an escape sequence.
func fit(s string, width int, right bool) string {
	w := lipgloss.Width(s)
	if w >= width {
		rs := []rune(s)
		if len(rs) == w {
			return string(rs[:width])
		}
		return s
	}
	pad := strings.Repeat(" ", width-w)
	if right {
		return pad + s
	}
	return s + pad
}

// KeyValueBlock renders key/value pairs in a bordered box.
func KeyValueBlock(title string, pairs [][2]string) string {
	keyWidth := 0
	for _, p := range pairs {
		if len(p[0]) > keyWidth {
			keyWidth = len(p[0])
		}
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(fmt.Sprintf("%-*s", keyWidth+1, p[0]+":"))
		sb.WriteString("  " + key + "  " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(strings.TrimSuffix(sb.String(), "\n"))
}
