package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docstab/internal/config"
	"github.com/dgallion1/docstab/internal/gdocs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docstab.
type Server struct {
	router chi.Router
	gdocs  *gdocs.Client
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(client *gdocs.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		gdocs: client,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocstabAPIKey, s.log))

		r.Get("/api/documents", s.handleSearchDocuments)
		r.Post("/api/documents", s.handleCreateDocument)
		r.Post("/api/documents/import", s.handleImportDocument)

		r.Get("/api/docs/{docID}", s.handleDocumentInfo)
		r.Get("/api/docs/{docID}/tabs", s.handleListTabs)
		r.Get("/api/docs/{docID}/content", s.handleContent)
		r.Get("/api/docs/{docID}/diff", s.handleTabDiff)

		r.Post("/api/docs/{docID}/append", s.handleAppend)
		r.Post("/api/docs/{docID}/insert", s.handleInsert)
		r.Post("/api/docs/{docID}/delete", s.handleDeleteRange)
		r.Post("/api/docs/{docID}/replace", s.handleReplace)
		r.Post("/api/docs/{docID}/batch", s.handleBatch)

		r.Get("/api/stats/gdocs", s.handleCallStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
