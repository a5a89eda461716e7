package view

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"checklistpp/internal/storage"
)

// minColumnWidth is the narrowest usable kanban column. Terminals that
// cannot fit three columns at this width fall back to the vertical layout.
const minColumnWidth = 12

// columnEntries buckets tasks into the ordered columns, each entry keeping
// its original 1-based number.
func columnEntries(tasks storage.Checklist) map[storage.Status][]Entry {
	cols := map[storage.Status][]Entry{}
	for i := range tasks {
		status := storage.StatusForTask(&tasks[i])
		cols[status] = append(cols[status], Entry{Number: i + 1, Task: tasks[i]})
	}
	return cols
}

// RenderBoard renders the kanban view. Widths that fit three columns use
// the horizontal table layout; narrower terminals get vertically stacked
// columns with the Done column truncated to doneLimit for display.
func (s *Styles) RenderBoard(name string, tasks storage.Checklist, width, doneLimit int, warnings []string) string {
	var b strings.Builder
	b.WriteString(s.TitleStyle.Render("Board: " + name))
	b.WriteString("\n")

	cols := columnEntries(tasks)
	if width >= minColumnWidth*len(storage.Columns()) {
		b.WriteString(s.renderHorizontal(cols, width))
	} else {
		b.WriteString(s.renderVertical(cols, doneLimit))
	}

	for _, w := range warnings {
		b.WriteString(s.WarningStyle.Render("warning: " + w))
		b.WriteString("\n")
	}
	return b.String()
}

// renderHorizontal lays the columns side by side in equal-width cells.
func (s *Styles) renderHorizontal(cols map[storage.Status][]Entry, width int) string {
	order := storage.Columns()
	colWidth := width / len(order)
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	var b strings.Builder
	rows := 0
	for _, col := range order {
		if n := len(cols[col]); n > rows {
			rows = n
		}
	}

	for _, col := range order {
		header := fmt.Sprintf("%s (%d)", col, len(cols[col]))
		b.WriteString(s.ColumnStyle.Render(pad(header, colWidth)))
	}
	b.WriteString("\n")
	for range order {
		b.WriteString(pad(strings.Repeat("-", colWidth-2), colWidth))
	}
	b.WriteString("\n")

	for row := 0; row < rows; row++ {
		for _, col := range order {
			cell := ""
			if entries := cols[col]; row < len(entries) {
				cell = fmt.Sprintf("%d. %s", entries[row].Number, entries[row].Task.Text)
			}
			b.WriteString(pad(cell, colWidth))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderVertical stacks the columns. Only the Done column is truncated for
// display; the data underneath is never touched.
func (s *Styles) renderVertical(cols map[storage.Status][]Entry, doneLimit int) string {
	var b strings.Builder
	for _, col := range storage.Columns() {
		entries := cols[col]
		b.WriteString(s.ColumnStyle.Render(fmt.Sprintf("%s (%d)", col, len(entries))))
		b.WriteString("\n")
		if len(entries) == 0 {
			b.WriteString(s.MetaStyle.Render("  (empty)"))
			b.WriteString("\n")
			continue
		}

		shown := entries
		hidden := 0
		if col == storage.StatusDone && doneLimit > 0 && len(entries) > doneLimit {
			shown = entries[:doneLimit]
			hidden = len(entries) - doneLimit
		}
		for _, e := range shown {
			b.WriteString(fmt.Sprintf("  %d. %s\n", e.Number, e.Task.Text))
		}
		if hidden > 0 {
			b.WriteString(s.MetaStyle.Render(fmt.Sprintf("  (+%d more)", hidden)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// pad truncates or right-pads a cell to exactly width display columns,
// keeping one column of spacing from the neighbor.
func pad(text string, width int) string {
	truncated := runewidth.Truncate(text, width-1, "..")
	return truncated + strings.Repeat(" ", width-runewidth.StringWidth(truncated))
}
