// Package server exposes a local read-only preview of the pipeline
// output: a JSON manifest plus static serving of charts and reports.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"olistcli/internal/config"
)

// Server serves the output directory for local inspection.
type Server struct {
	cfg    config.ServerConfig
	paths  *config.Paths
	logger *slog.Logger
}

// New creates a preview server over the given output paths.
func New(cfg config.ServerConfig, paths *config.Paths, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, paths: paths, logger: logger}
}

// OutputFile describes one generated artifact.
type OutputFile struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// OutputManifest lists every chart and report currently on disk.
type OutputManifest struct {
	Charts  []OutputFile `json:"charts"`
	Reports []OutputFile `json:"reports"`
}

// Router builds the HTTP routes. Exposed separately so tests can drive
// the handlers without a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/outputs", s.handleOutputs)

	r.Handle("/charts/*", http.StripPrefix("/charts/", http.FileServer(http.Dir(s.paths.ChartsDir))))
	r.Handle("/reports/*", http.StripPrefix("/reports/", http.FileServer(http.Dir(s.paths.ReportsDir))))

	return r
}

// Start runs the server until the context is cancelled, then shuts it
// down gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", s.cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down preview server")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "ok",
		"app":     config.AppName,
		"version": config.AppVersion,
	})
}

func (s *Server) handleOutputs(w http.ResponseWriter, r *http.Request) {
	manifest := OutputManifest{
		Charts:  listDir(s.paths.ChartsDir),
		Reports: listDir(s.paths.ReportsDir),
	}
	render.JSON(w, r, manifest)
}

// listDir returns the files directly inside dir, sorted by name.
// A missing directory yields an empty list: the pipeline may simply not
// have run yet.
func listDir(dir string) []OutputFile {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []OutputFile{}
	}

	files := make([]OutputFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, OutputFile{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			ModTime:   info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
