// Package web serves the task list as a local HTML page with form actions.
package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/idilsaglam/tasklist/internal/controller"
	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/view"
)

// Page is the controller's Renderer for the web front end.
type Page struct {
	mu sync.RWMutex
	v  view.View
}

func (p *Page) Render(v view.View) {
	p.mu.Lock()
	p.v = v
	p.mu.Unlock()
}

// View returns the most recent view.
func (p *Page) View() view.View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.v
}

// Server handles HTTP requests for the task list.
type Server struct {
	ctrl   *controller.Controller
	page   *Page
	title  string
	logger *log.Logger

	// events serialises handlers: the controller sees one action at a time
	events sync.Mutex
	router *mux.Router
}

// NewServer wires routes over ctrl, which must render into page.
func NewServer(ctrl *controller.Controller, page *Page, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{ctrl: ctrl, page: page, title: "Tasks", logger: logger, router: mux.NewRouter()}
	RegisterRoutes(s.router, s)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", "http://"+addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// act runs fn as one event and redirects back to the page.
func (s *Server) act(w http.ResponseWriter, r *http.Request, fn func()) {
	s.events.Lock()
	fn()
	s.events.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := view.RenderHTML(&buf, s.page.View(), view.PageOptions{Title: s.title, Interactive: true}); err != nil {
		s.logger.Error("render page", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// CreateTask handles POST /tasks.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	text := r.PostFormValue("text")
	s.act(w, r, func() { s.ctrl.Add(text) })
}

// ToggleTask handles POST /tasks/{taskID}/toggle.
func (s *Server) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["taskID"]
	s.act(w, r, func() { s.ctrl.Toggle(id) })
}

// DeleteTask handles POST /tasks/{taskID}/delete.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["taskID"]
	s.act(w, r, func() { s.ctrl.Remove(id) })
}

// ClearCompleted handles POST /tasks/clear-completed.
func (s *Server) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func() { s.ctrl.ClearCompleted() })
}

// ClearAll handles POST /tasks/clear-all. The browser asks; the form carries the answer.
func (s *Server) ClearAll(w http.ResponseWriter, r *http.Request) {
	yes := r.PostFormValue("confirm") == "yes"
	s.act(w, r, func() { s.ctrl.ClearAll(controller.Answered(yes)) })
}

// GetTasks handles GET /api/tasks.
func (s *Server) GetTasks(w http.ResponseWriter, r *http.Request) {
	s.events.Lock()
	tasks := s.ctrl.Tasks()
	s.events.Unlock()

	b, err := model.Encode(tasks)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

// GetSummary handles GET /api/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	v := s.page.View()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"total":   v.Total,
		"done":    v.Done,
		"summary": v.Summary,
	})
}
