package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"npofeed/logger"
)

// Server serves the generated feed artifact over HTTP. Root requests
// redirect to the artifact; every response carries permissive CORS and
// no-cache headers.
type Server struct {
	httpServer *http.Server
	feedPath   string
	log        *logger.Logger
}

// New creates a feed server listening on addr, serving the artifact at
// feedPath
func New(addr, feedPath string) *Server {
	s := &Server{
		feedPath: feedPath,
		log:      logger.ForServer(),
	}
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the router; exposed separately so tests can drive it
// without a listener
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}).Handler)
	r.Use(noCache)

	feedRoute := "/" + filepath.Base(s.feedPath)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, feedRoute, http.StatusFound)
	})
	r.Get(feedRoute, s.serveFeed)

	return r
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		next.ServeHTTP(w, req)
	})
}

func (s *Server) serveFeed(w http.ResponseWriter, req *http.Request) {
	data, err := os.ReadFile(s.feedPath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "feed not generated yet", http.StatusNotFound)
			return
		}
		s.log.Error().Err(err).Msg("Failed to read feed artifact")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(data)
}

// Start serves HTTP until Shutdown is called or the listener fails
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Str("feed", s.feedPath).Msg("Serving RSS feed")

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
