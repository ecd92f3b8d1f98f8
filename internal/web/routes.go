package web

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, s *Server) {
	router.Use(sameOrigin)
	router.HandleFunc("/", s.Index).Methods(http.MethodGet)
	router.HandleFunc("/api/tasks", s.GetTasks).Methods(http.MethodGet)
	router.HandleFunc("/api/summary", s.GetSummary).Methods(http.MethodGet)
	// fixed paths before {taskID} so they never match as ids
	router.HandleFunc("/tasks/clear-completed", s.ClearCompleted).Methods(http.MethodPost)
	router.HandleFunc("/tasks/clear-all", s.ClearAll).Methods(http.MethodPost)
	router.HandleFunc("/tasks", s.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}/toggle", s.ToggleTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}/delete", s.DeleteTask).Methods(http.MethodPost)
}

// sameOrigin rejects state-changing requests sent by another site, so a
// foreign page cannot submit the forms (clear-all included) on the user's behalf.
func sameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		if !fromSameOrigin(r) {
			http.Error(w, "cross-site request rejected", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// fromSameOrigin trusts Sec-Fetch-Site when the browser sends it, else
// compares Origin with Host. Requests with neither (curl, tests) pass.
func fromSameOrigin(r *http.Request) bool {
	switch r.Header.Get("Sec-Fetch-Site") {
	case "":
	case "same-origin", "none":
		return true
	default:
		return false
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || origin == "null" {
		return false
	}
	return u.Host == r.Host
}
