package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/osuushi/meshindex"
	"github.com/osuushi/meshindex/advanced"
	"github.com/osuushi/meshindex/internal/logger"
	"github.com/osuushi/meshindex/render"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxBodyBytes = 64 << 20

type triangulateRequest struct {
	Coordinates []float32 `json:"coordinates"`
}

type triangulateResponse struct {
	Indices []uint32 `json:"indices"`
}

type createTreeRequest struct {
	Coordinates []float32 `json:"coordinates"`
	Indices     []uint32  `json:"indices"`
}

type treeResponse struct {
	ID        string    `json:"id"`
	Triangles int       `json:"triangles"`
	Nodes     int       `json:"nodes"`
	Depth     int       `json:"depth"`
	Created   time.Time `json:"created"`
}

type sampleResponse struct {
	Triangle []float32 `json:"triangle"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// POST /triangulate
func (s *Server) TriangulateHandler(w http.ResponseWriter, r *http.Request) {
	var req triangulateRequest
	if !s.decode(w, r, s.triangulateValidator, &req) {
		return
	}
	if len(req.Coordinates)%2 != 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("coordinates must hold x, y pairs"))
		return
	}

	indexer := s.indexer(s.log)
	s.writeJSON(w, http.StatusOK, triangulateResponse{Indices: indexer.TriangulateFlat(req.Coordinates)})
}

// POST /trees
func (s *Server) CreateTreeHandler(w http.ResponseWriter, r *http.Request) {
	var req createTreeRequest
	if !s.decode(w, r, s.treeValidator, &req) {
		return
	}
	if len(req.Coordinates)%2 != 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("coordinates must hold x, y pairs"))
		return
	}

	// Keep this tree's log for its render page, as well as logging as usual
	buffered := logger.NewBuffered(zapcore.DebugLevel)
	indexer := s.indexer(zap.New(zapcore.NewTee(s.log.Core(), buffered.Core())))

	var tree *meshindex.Tree
	var err error
	if req.Indices != nil {
		tree, err = indexer.NewTreeFromFlatIndices(req.Coordinates, req.Indices)
	} else {
		tree, err = indexer.NewTreeFromFlat(req.Coordinates)
	}
	switch {
	case errors.Is(err, meshindex.ErrInvalidIndices):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, meshindex.ErrEmptyMesh):
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	e := &entry{
		tree:    tree,
		points:  meshindex.PointsFromFlat(req.Coordinates),
		logHTML: buffered.HTML(),
		created: time.Now().UTC(),
	}
	id := s.store(e)
	s.log.Info("stored tree", zap.Stringer("id", id), zap.Int("triangles", tree.Stats().Leaves))
	s.writeJSON(w, http.StatusCreated, describe(id, e))
}

// GET /trees/{id}
func (s *Server) GetTreeHandler(w http.ResponseWriter, r *http.Request) {
	id, e, ok := s.findTree(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, describe(id, e))
}

// DELETE /trees/{id}
func (s *Server) DeleteTreeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r)
	if !ok {
		return
	}
	if !s.remove(id) {
		s.writeError(w, http.StatusNotFound, errors.Errorf("tree %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /trees/{id}/sample?x=&y=
func (s *Server) SampleHandler(w http.ResponseWriter, r *http.Request) {
	_, e, ok := s.findTree(w, r)
	if !ok {
		return
	}
	x, y, err := parseXY(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sampleResponse{Triangle: e.tree.SampleFlat(x, y)})
}

// GET /trees/{id}/render, with an optional probe at ?x=&y=
func (s *Server) RenderHandler(w http.ResponseWriter, r *http.Request) {
	id, e, ok := s.findTree(w, r)
	if !ok {
		return
	}
	var probes []advanced.Point
	if r.URL.Query().Has("x") || r.URL.Query().Has("y") {
		x, y, err := parseXY(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		probes = append(probes, advanced.Point{X: float64(x), Y: float64(y)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.Mesh(w, render.MeshOptions{
		Title:     "Tree " + id.String(),
		Width:     s.config.Render.Width,
		Height:    s.config.Render.Height,
		Points:    e.points,
		Triangles: e.tree.Triangles(),
		Probes:    probes,
		Tree:      e.tree.Root(),
		LogHTML:   e.logHTML,
	})
	if err != nil {
		s.log.Error("render failed", zap.Stringer("id", id), zap.Error(err))
	}
}

// Indexer configured from the server config, logging to log.
func (s *Server) indexer(log *zap.Logger) *meshindex.Indexer {
	triangulator := s.config.Triangulator()
	triangulator.Logger = log
	return &meshindex.Indexer{
		Triangulator: *triangulator,
		TreeBuilder:  advanced.TreeBuilder{Logger: log},
	}
}

func describe(id uuid.UUID, e *entry) treeResponse {
	stats := e.tree.Stats()
	return treeResponse{
		ID:        id.String(),
		Triangles: stats.Leaves,
		Nodes:     stats.Nodes,
		Depth:     stats.Depth,
		Created:   e.created,
	}
}

// Read, validate and decode a JSON body. On failure the error response has
// been written and false is returned.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, validator *Validator, v interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "read body"))
		return false
	}
	if err := validator.ValidateBytes(body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode body"))
		return false
	}
	return true
}

func (s *Server) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, http.StatusNotFound, errors.Errorf("tree %q not found", mux.Vars(r)["id"]))
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) findTree(w http.ResponseWriter, r *http.Request) (uuid.UUID, *entry, bool) {
	id, ok := s.parseID(w, r)
	if !ok {
		return id, nil, false
	}
	e, ok := s.lookup(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.Errorf("tree %s not found", id))
		return id, nil, false
	}
	return id, e, true
}

func parseXY(r *http.Request) (float32, float32, error) {
	query := r.URL.Query()
	x, err := strconv.ParseFloat(query.Get("x"), 32)
	if err != nil {
		return 0, 0, errors.Errorf("invalid x %q", query.Get("x"))
	}
	y, err := strconv.ParseFloat(query.Get("y"), 32)
	if err != nil {
		return 0, 0, errors.Errorf("invalid y %q", query.Get("y"))
	}
	return float32(x), float32(y), nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Debug("request failed", zap.Int("status", status), zap.Error(err))
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
