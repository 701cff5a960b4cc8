// Package preview serves generated report artifacts over local HTTP so the
// HTML dashboard can be opened in a browser. It is read-only: it never
// computes or mutates report data.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/anstrom/nmapreport/internal/config"
	"github.com/anstrom/nmapreport/internal/logging"
	"github.com/anstrom/nmapreport/internal/report"
)

// Server timeout constants.
const (
	serverShutdownTimeout = 30 * time.Second
	serverIdleTimeout     = 60 * time.Second
)

// knownArtifacts are the fixed artifact names a report run can produce.
// Only these are exposed; nothing else in the directory is served.
var knownArtifacts = []string{
	report.CSVFileName,
	report.ExcelFileName,
	report.HTMLFileName,
	report.JSONFileName,
}

// Server serves the artifact directory.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	config     *config.Config
	directory  string
	logger     *slog.Logger
	startTime  time.Time
}

// New creates a preview server for the artifact directory named in the
// configuration. The directory must exist.
func New(cfg *config.Config) (*Server, error) {
	logger := logging.Default().With("component", "preview")

	directory, err := filepath.Abs(cfg.Preview.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve artifact directory: %w", err)
	}
	info, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("artifact directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artifact path %s is not a directory", directory)
	}

	server := &Server{
		router:    mux.NewRouter(),
		config:    cfg,
		directory: directory,
		logger:    logger,
		startTime: time.Now(),
	}

	server.setupRoutes()
	server.setupMiddleware()

	server.httpServer = &http.Server{
		Addr:         cfg.GetPreviewAddress(),
		Handler:      server.router,
		ReadTimeout:  cfg.Preview.RequestTimeout,
		WriteTimeout: cfg.Preview.RequestTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	return server, nil
}

// Start starts the preview server and blocks until the context is
// cancelled or the server fails.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting preview server",
		"address", s.httpServer.Addr,
		"directory", s.directory)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("preview server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errChan:
		return err
	}
}

// Stop gracefully stops the preview server.
func (s *Server) Stop() error {
	s.logger.Info("Stopping preview server")

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Preview server shutdown error", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("Preview server stopped successfully")
	return nil
}

// setupRoutes configures the served endpoints.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.indexHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/report", s.reportHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/artifacts/{name}", s.artifactHandler).
		Methods(http.MethodGet, http.MethodHead)
}

// setupMiddleware configures middleware for the preview server.
func (s *Server) setupMiddleware() {
	s.router.Use(s.recoveryMiddleware)

	if s.config.Logging.RequestLogging {
		s.router.Use(s.loggingMiddleware)
	}

	cors := s.config.Preview.CORS
	if cors.Enabled {
		s.router.Use(handlers.CORS(
			handlers.AllowedOrigins(cors.AllowedOrigins),
			handlers.AllowedMethods(cors.AllowedMethods),
			handlers.AllowedHeaders(cors.AllowedHeaders),
		))
	}
}

// indexHandler lists which artifacts are present and where to fetch them.
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	artifacts := make(map[string]string)
	for _, name := range s.availableArtifacts() {
		artifacts[name] = "/artifacts/" + name
	}

	response := map[string]interface{}{
		"service":   "nmapreport-preview",
		"directory": s.directory,
		"artifacts": artifacts,
		"endpoints": map[string]string{
			"health": "/health",
			"report": "/report",
		},
		"timestamp": time.Now().UTC(),
	}

	s.writeJSON(w, r, http.StatusOK, response)
}

// healthHandler reports server liveness and whether the artifact directory
// is still readable.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	checks := make(map[string]string)

	if _, err := os.Stat(s.directory); err != nil {
		status = "unhealthy"
		checks["directory"] = "failed: " + err.Error()
	} else {
		checks["directory"] = "ok"
	}

	response := map[string]interface{}{
		"status":    status,
		"uptime":    time.Since(s.startTime).String(),
		"checks":    checks,
		"timestamp": time.Now().UTC(),
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	s.writeJSON(w, r, statusCode, response)
}

// reportHandler redirects browsers to the HTML dashboard when it exists.
func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.directory, report.HTMLFileName)
	if _, err := os.Stat(path); err != nil {
		s.writeError(w, r, http.StatusNotFound,
			fmt.Errorf("html report not generated, run with --html first"))
		return
	}
	http.Redirect(w, r, "/artifacts/"+report.HTMLFileName, http.StatusFound)
}

// artifactHandler serves one artifact file from the directory. Only the
// fixed artifact names are reachable, so a crafted path can never escape
// the directory.
func (s *Server) artifactHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if !validArtifactName(name) {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid artifact name"))
		return
	}

	path := filepath.Join(s.directory, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("artifact %s not found", name))
		return
	}

	http.ServeFile(w, r, path)
}

// validArtifactName accepts only the fixed artifact file names.
func validArtifactName(name string) bool {
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return false
	}
	for _, known := range knownArtifacts {
		if name == known {
			return true
		}
	}
	return false
}

// availableArtifacts returns the artifact names present on disk.
func (s *Server) availableArtifacts() []string {
	var present []string
	for _, name := range knownArtifacts {
		if _, err := os.Stat(filepath.Join(s.directory, name)); err == nil {
			present = append(present, name)
		}
	}
	return present
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// GetAddress returns the server address.
func (s *Server) GetAddress() string {
	return s.httpServer.Addr
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// writeError writes a standardized error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	s.logger.Error("Preview request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", statusCode,
		"error", err,
		"remote_addr", r.RemoteAddr)

	response := ErrorResponse{
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		s.logger.Error("Failed to encode error response", "error", encodeErr)
	}
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method)
	}
}

// recoveryMiddleware recovers from panics and returns a 500 error.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("Panic in preview handler",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		s.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
