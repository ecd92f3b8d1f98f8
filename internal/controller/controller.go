// Package controller owns the task list and keeps it, its persisted copy and
// its rendered view in step: every action mutates, persists, then renders.
//
// A Controller is not safe for concurrent use. Front ends deliver one user
// event at a time, the way a UI event loop would.
package controller

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/store"
	"github.com/idilsaglam/tasklist/internal/view"
)

// Renderer receives a freshly built view after every change.
type Renderer interface {
	Render(v view.View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(v view.View)

func (f RendererFunc) Render(v view.View) { f(v) }

// Controller is the single owner of the in-memory task list.
type Controller struct {
	store    store.Store
	key      string
	renderer Renderer
	logger   *log.Logger
	newID    func() string

	tasks []model.Task
}

// Option configures a Controller.
type Option func(*Controller)

// WithKey sets the storage key (default store.DefaultKey).
func WithKey(key string) Option { return func(c *Controller) { c.key = key } }

// WithRenderer sets where views are pushed.
func WithRenderer(r Renderer) Option { return func(c *Controller) { c.renderer = r } }

// WithLogger sets the logger for persistence warnings.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(f func() string) Option { return func(c *Controller) { c.newID = f } }

// New loads the persisted list (empty on any failure) and renders it.
func New(s store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:  s,
		key:    store.DefaultKey,
		logger: logging.Discard(),
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	c.tasks = c.load()
	c.Render()
	return c
}

func (c *Controller) load() []model.Task {
	b, err := c.store.Get(c.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.logger.Warn("could not read tasks", "key", c.key, "err", err)
		}
		return []model.Task{}
	}
	tasks, err := model.Decode(b)
	if err != nil {
		c.logger.Warn("could not parse tasks", "key", c.key, "err", err)
		return []model.Task{}
	}
	return c.reID(tasks)
}

// reID gives fresh ids to tasks whose id repeats an earlier one.
func (c *Controller) reID(tasks []model.Task) []model.Task {
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		if seen[tasks[i].ID] {
			old := tasks[i].ID
			tasks[i].ID = c.freshID(func(id string) bool { return seen[id] || model.Index(tasks, id) >= 0 })
			c.logger.Warn("duplicate task id in store", "id", old, "replaced_by", tasks[i].ID)
		}
		seen[tasks[i].ID] = true
	}
	return tasks
}

// maxIDRetries bounds calls to a custom generator before falling back to uuid.
const maxIDRetries = 3

// freshID returns an id for which taken reports false.
func (c *Controller) freshID(taken func(string) bool) string {
	id := c.newID()
	for tries := 0; taken(id); tries++ {
		if tries < maxIDRetries {
			id = c.newID()
		} else {
			id = uuid.NewString()
		}
	}
	return id
}

// Reload discards the in-memory list, re-reads the store and renders.
func (c *Controller) Reload() {
	c.tasks = c.load()
	c.Render()
}

// Tasks returns a copy of the current list, newest first.
func (c *Controller) Tasks() []model.Task { return model.Clone(c.tasks) }

// Add prepends a task with the trimmed text. Blank text is ignored and
// reported as false.
func (c *Controller) Add(text string) bool {
	text, ok := model.NormalizeText(text)
	if !ok {
		return false
	}
	id := c.freshID(func(id string) bool { return model.Index(c.tasks, id) >= 0 })
	c.tasks = model.Prepend(c.tasks, model.Task{ID: id, Text: text})
	c.commit()
	return true
}

// Toggle flips the done flag of id and reports whether id existed.
func (c *Controller) Toggle(id string) bool {
	var found bool
	c.tasks, found = model.Toggle(c.tasks, id)
	c.commit()
	return found
}

// Remove deletes id and reports whether it existed.
func (c *Controller) Remove(id string) bool {
	var found bool
	c.tasks, found = model.Remove(c.tasks, id)
	c.commit()
	return found
}

// ClearCompleted drops every done task and returns how many went.
func (c *Controller) ClearCompleted() int {
	var n int
	c.tasks, n = model.ClearCompleted(c.tasks)
	c.commit()
	return n
}

// ClearAll empties the list once confirm agrees. A refusal changes nothing:
// no persist, no render.
func (c *Controller) ClearAll(confirm Confirmer) bool {
	if confirm == nil || !confirm.Confirm(ClearAllPrompt) {
		return false
	}
	c.tasks = []model.Task{}
	c.commit()
	return true
}

// Render rebuilds the view, hands it to the renderer and returns it.
func (c *Controller) Render() view.View {
	v := view.Build(c.tasks)
	if c.renderer != nil {
		c.renderer.Render(v)
	}
	return v
}

func (c *Controller) commit() {
	c.persist()
	c.Render()
}

// persist is best effort; failures are logged and the in-memory list stays authoritative.
func (c *Controller) persist() {
	b, err := model.Encode(c.tasks)
	if err != nil {
		c.logger.Warn("could not encode tasks", "err", err)
		return
	}
	if err := c.store.Set(c.key, b); err != nil {
		c.logger.Warn("could not save tasks", "key", c.key, "err", err)
	}
}
