// HTTP service that builds point location trees and answers queries against
// them.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/osuushi/meshindex"
	"github.com/osuushi/meshindex/advanced"
	"github.com/osuushi/meshindex/internal/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// A tree and what it was built from, kept for rendering.
type entry struct {
	tree    *meshindex.Tree
	points  []advanced.Point
	logHTML string
	created time.Time
}

type Server struct {
	config config.Config
	log    *zap.Logger
	router *mux.Router
	server *http.Server

	triangulateValidator *Validator
	treeValidator        *Validator

	// Trees are immutable once built, so the lock only guards the map
	treesLock sync.RWMutex
	trees     map[uuid.UUID]*entry
}

func New(cfg config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	router := mux.NewRouter()
	s := &Server{
		config: cfg,
		log:    log,
		router: router,
		server: &http.Server{
			Addr:         cfg.Server.Addr,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  time.Second * 60,
			Handler:      router,
		},
		triangulateValidator: mustValidator(triangulateSchema),
		treeValidator:        mustValidator(treeSchema),
		trees:                make(map[uuid.UUID]*entry),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/triangulate", s.TriangulateHandler).Methods("POST")
	s.router.HandleFunc("/trees", s.CreateTreeHandler).Methods("POST")
	s.router.HandleFunc("/trees/{id}", s.GetTreeHandler).Methods("GET")
	s.router.HandleFunc("/trees/{id}", s.DeleteTreeHandler).Methods("DELETE")
	s.router.HandleFunc("/trees/{id}/sample", s.SampleHandler).Methods("GET")
	s.router.HandleFunc("/trees/{id}/render", s.RenderHandler).Methods("GET")
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serving in the background. Serving errors are logged.
func (s *Server) Start() {
	go func() {
		s.log.Info("HTTP server starting", zap.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Stop gracefully, waiting for in flight requests until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown")
	}
	s.log.Info("HTTP server stopped")
	return nil
}

func (s *Server) lookup(id uuid.UUID) (*entry, bool) {
	s.treesLock.RLock()
	defer s.treesLock.RUnlock()
	e, ok := s.trees[id]
	return e, ok
}

func (s *Server) store(e *entry) uuid.UUID {
	id := uuid.New()
	s.treesLock.Lock()
	defer s.treesLock.Unlock()
	s.trees[id] = e
	return id
}

func (s *Server) remove(id uuid.UUID) bool {
	s.treesLock.Lock()
	defer s.treesLock.Unlock()
	if _, ok := s.trees[id]; !ok {
		return false
	}
	delete(s.trees, id)
	return true
}

// Number of trees currently held.
func (s *Server) Len() int {
	s.treesLock.RLock()
	defer s.treesLock.RUnlock()
	return len(s.trees)
}
