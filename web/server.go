package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"weather-dashboard/dashboard"
	"weather-dashboard/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Kicker requests an immediate refresh cycle after a controls change
type Kicker interface {
	Kick()
}

// Server serves the dashboard page and the JSON API
type Server struct {
	store     *dashboard.Store
	refresher Kicker
	saved     []string
	templates *template.Template
	mux       *http.ServeMux
	server    *http.Server
}

// NewServer creates a new dashboard server
func NewServer(store *dashboard.Store, refresher Kicker, savedCities []string, port int) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:     store,
		refresher: refresher,
		saved:     savedCities,
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
		mux:       mux,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	// Dashboard page and controls
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/dashboard", s.handleControls)

	// Machine-readable snapshot
	mux.HandleFunc("/api/dashboard", s.handleGetDashboard)

	// Health check
	mux.HandleFunc("/api/health", s.handleHealthCheck)

	return s
}

// Handler returns the route table, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins serving the dashboard
func (s *Server) Start() error {
	log.Printf("Starting dashboard server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleIndex renders the dashboard page from the latest snapshot
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	controls := s.store.Controls()

	var view viewData
	if snap, ok := s.store.Latest(); ok {
		view = buildView(snap, controls, s.saved)
	} else {
		view = loadingView(controls, s.saved)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		log.Printf("Error executing dashboard template: %v", err)
	}
}

// handleControls applies city/unit changes and kicks an immediate refresh
func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	controls := s.store.Controls()

	if city := strings.TrimSpace(r.FormValue("city")); city != "" {
		controls.Primary = city
	}
	// An empty comparison city leaves comparison mode
	controls.Secondary = strings.TrimSpace(r.FormValue("city2"))
	if u := r.FormValue("units"); u != "" {
		controls.Units = models.ParseUnits(u)
	}

	s.store.SetControls(controls)
	s.refresher.Kick()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleGetDashboard returns the latest snapshot as JSON, with
// temperatures converted to the active unit system
func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	snap, ok := s.store.Latest()
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "no snapshot available yet",
		})
		return
	}

	response := map[string]interface{}{
		"snapshot":  displaySnapshot(snap),
		"unitLabel": snap.Units.Label(),
		"timestamp": time.Now(),
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
