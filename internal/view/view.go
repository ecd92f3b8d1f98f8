// Package view turns a task list into a description of what every front end
// shows: one row per task, or a placeholder, plus a summary label.
package view

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/tasklist/internal/model"
)

// Placeholder is shown instead of rows when there are no tasks.
const Placeholder = "No tasks yet — add one!"

// View is the full visual state derived from a task list.
type View struct {
	Rows        []Row
	Placeholder string // set only when Rows is empty
	Summary     string
	Total       int
	Done        int
}

// Row describes one task line: toggle control, text, delete control.
type Row struct {
	ID          string
	Text        string // raw; front ends escape for their medium
	Done        bool
	Pressed     string // aria-pressed value, "true" or "false"
	ToggleTitle string
}

// Empty reports whether the placeholder is shown.
func (v View) Empty() bool { return len(v.Rows) == 0 }

// Build regenerates the view from scratch.
func Build(tasks []model.Task) View {
	total, done := model.Stats(tasks)
	v := View{
		Summary: Summary(total, done),
		Total:   total,
		Done:    done,
	}
	if total == 0 {
		v.Placeholder = Placeholder
		return v
	}
	v.Rows = make([]Row, 0, total)
	for _, t := range tasks {
		r := Row{ID: t.ID, Text: t.Text, Done: t.Done, Pressed: "false", ToggleTitle: "Mark as done"}
		if t.Done {
			r.Pressed, r.ToggleTitle = "true", "Mark as not done"
		}
		v.Rows = append(v.Rows, r)
	}
	return v
}

// Summary formats "<total> task(s) • <done> done".
func Summary(total, done int) string {
	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s • %d done", total, noun, done)
}

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five markup-significant characters.
func EscapeHTML(s string) string { return htmlReplacer.Replace(s) }
