package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table represents a styled table.
type Table struct {
	headers []string
	rows    [][]string
	styler  func(row, col int, cell string) lipgloss.Style
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// CellStyle sets a per-cell style function for data rows.
func (t *Table) CellStyle(fn func(row, col int, cell string) lipgloss.Style) *Table {
	t.styler = fn
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table as a string.
func (t *Table) String() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorBlue).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorDimGray)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if t.styler != nil && row >= 0 && row < len(t.rows) && col < len(t.rows[row]) {
				return t.styler(row, col, t.rows[row][col]).Inherit(cellStyle)
			}
			return cellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}
