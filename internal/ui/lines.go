package ui

import (
	"fmt"

	"github.com/idilsaglam/tasklist/internal/view"
)

// Header is the title line with the summary label.
func Header(v view.View) string {
	t := current
	return fmt.Sprintf("%s   %s", t.Title.Render("Tasks"), t.Accent.Render(v.Summary))
}

// RowLine renders one task row: index, toggle box, text.
func RowLine(i int, r view.Row) string {
	t := current
	box, text := t.Muted.Render(t.BoxUnchecked), r.Text
	if r.Done {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(r.Text)
	}
	return fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), box, text)
}

// ListLines renders the rows of v, or its placeholder.
func ListLines(v view.View) []string {
	if v.Empty() {
		return []string{current.Muted.Render(v.Placeholder)}
	}
	out := make([]string, 0, len(v.Rows))
	for i, r := range v.Rows {
		out = append(out, RowLine(i, r))
	}
	return out
}

// GroupedLines renders pending rows then done rows, keeping list indexes.
func GroupedLines(v view.View) []string {
	if v.Empty() {
		return ListLines(v)
	}
	var pend, done []string
	for i, r := range v.Rows {
		if r.Done {
			done = append(done, RowLine(i, r))
		} else {
			pend = append(pend, RowLine(i, r))
		}
	}
	none := current.Muted.Render("(none)")
	if len(pend) == 0 {
		pend = []string{none}
	}
	if len(done) == 0 {
		done = []string{none}
	}
	lines := []string{current.Pending.Render(current.SymPending + " Pending")}
	lines = append(lines, pend...)
	lines = append(lines, "", current.Success.Render(current.SymDone+" Done"))
	return append(lines, done...)
}
