package view

import (
	"fmt"
	"html/template"
	"io"
)

// PageOptions tune the standalone HTML page.
type PageOptions struct {
	Title string
	// Interactive adds the forms that post back to the web front end.
	// A static export leaves them out.
	Interactive bool
}

type pageData struct {
	PageOptions
	View
}

var pageTpl = template.Must(template.New("page").Funcs(template.FuncMap{
	// task text goes through EscapeHTML, never through the raw template
	"text": func(s string) template.HTML { return template.HTML(EscapeHTML(s)) },
}).Parse(`<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>{{.Title}}</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif;max-width:560px;margin:32px auto;padding:0 16px}
ul{list-style:none;padding:0}
.task-item{display:flex;justify-content:space-between;align-items:center;padding:8px 0;border-bottom:1px solid #eee}
.task-item.empty{justify-content:center;color:#6a737d}
.task-left{display:flex;align-items:center;gap:8px}
.checkbox{width:24px;height:24px}
.checkbox.checked{background:#16a34a;color:#fff}
.task-text.completed{text-decoration:line-through;color:#6a737d}
.inline{display:inline}
</style></head>
<body>
<h1>{{.Title}}</h1>
{{if .Interactive}}<form id="task-form" method="post" action="/tasks">
<input id="task-input" name="text" placeholder="What needs doing?" autocomplete="off" autofocus value="">
<button type="submit">Add</button>
</form>{{end}}
<ul id="task-list">
{{- if .Empty}}
<li class="task-item empty">{{.Placeholder}}</li>
{{- else}}{{range .Rows}}
<li class="task-item" data-id="{{.ID}}">
<div class="task-left">
{{- if $.Interactive}}<form class="inline" method="post" action="/tasks/{{.ID}}/toggle">{{end}}
<button class="checkbox{{if .Done}} checked{{end}}" aria-pressed="{{.Pressed}}" title="{{.ToggleTitle}}">{{if .Done}}✓{{end}}</button>
{{- if $.Interactive}}</form>{{end}}
<div class="task-text{{if .Done}} completed{{end}}">{{text .Text}}</div>
</div>
<div class="task-actions">
{{- if $.Interactive}}<form class="inline" method="post" action="/tasks/{{.ID}}/delete">{{end}}
<button class="btn-icon remove" title="Delete task" aria-label="Delete task">🗑️</button>
{{- if $.Interactive}}</form>{{end}}
</div>
</li>{{end}}
{{- end}}
</ul>
<p id="count">{{.Summary}}</p>
{{if .Interactive}}<form class="inline" method="post" action="/tasks/clear-completed"><button id="clear-completed">Clear completed</button></form>
<form class="inline" method="post" action="/tasks/clear-all" onsubmit="return confirm('Delete ALL tasks?')">
<input type="hidden" name="confirm" value="yes"><button id="clear-all">Clear all</button>
</form>{{end}}
</body></html>
`))

// RenderHTML writes v as a complete HTML document.
func RenderHTML(w io.Writer, v View, opt PageOptions) error {
	if opt.Title == "" {
		opt.Title = "Tasks"
	}
	if err := pageTpl.Execute(w, pageData{PageOptions: opt, View: v}); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
