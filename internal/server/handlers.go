package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/segviz/segviz/pkg/cache"
	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/pipeline"
)

// sceneSummary is the JSON shape returned for stored scenes.
type sceneSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Variant   string    `json:"variant"`
	Format    string    `json:"format"`
	Hash      string    `json:"hash"`
	Tissues   int       `json:"tissues"`
	Files     int       `json:"files"`
	Figures   []string  `json:"figures,omitempty"`
	Warnings  int       `json:"warnings,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func summarize(sc *Scene) sceneSummary {
	m := sc.Manifest
	return sceneSummary{
		ID:        sc.ID,
		Title:     m.Title,
		Variant:   string(m.Variant),
		Format:    sc.Format,
		Hash:      sc.Hash,
		Tissues:   len(m.Tissues),
		Files:     len(m.Files),
		Figures:   m.FigureNames(),
		Warnings:  len(m.Warnings()),
		CreatedAt: sc.CreatedAt,
		ExpiresAt: sc.ExpiresAt,
	}
}

func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "read request body: %v", err))
		return
	}

	format, err := requestFormat(r)
	if err != nil {
		writeError(w, err)
		return
	}

	m, err := s.Runner.Load(r.Context(), pipeline.Options{
		Document: string(body),
		Format:   string(format),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	canonical, err := manifest.EncodeJSON(m)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode manifest"))
		return
	}

	sc := NewScene(body, string(format), m, cache.Hash(canonical), s.TTL)
	if err := s.Store.Set(r.Context(), sc); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store scene"))
		return
	}

	s.Logger.Info("scene stored",
		"id", sc.ID,
		"title", m.Title,
		"tissues", len(m.Tissues),
		"format", sc.Format)
	writeJSON(w, http.StatusCreated, summarize(sc))
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.lookupScene(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summarize(sc))
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.lookupScene(w, r)
	if !ok {
		return
	}
	if err := s.Store.Delete(r.Context(), sc.ID); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete scene"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	s.renderArtifact(w, r, pipeline.ArtifactPlan, pipeline.FormatJSON, "application/json")
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	s.renderArtifact(w, r, pipeline.ArtifactLegend, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) handleFigures(w http.ResponseWriter, r *http.Request) {
	s.renderArtifact(w, r, pipeline.ArtifactFigures, pipeline.FormatSVG, "image/svg+xml")
}

// renderArtifact runs the assemble and render stages for a stored
// scene and writes the single requested artifact. The load stage is
// skipped: the manifest was parsed at upload.
func (s *Server) renderArtifact(w http.ResponseWriter, r *http.Request, artifact, format, contentType string) {
	sc, ok := s.lookupScene(w, r)
	if !ok {
		return
	}

	opts, err := artifactOptions(r, artifact, format)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	a, err := s.Runner.Assemble(ctx, sc.Manifest, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	artifacts, err := s.Runner.Render(ctx, sc.Manifest, a, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(artifacts[format])
}

// lookupScene fetches the scene named by the URL, writing the error
// response itself when the lookup fails.
func (s *Server) lookupScene(w http.ResponseWriter, r *http.Request) (*Scene, bool) {
	id := chi.URLParam(r, "sceneID")
	sc, err := s.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "scene lookup"))
		return nil, false
	}
	if sc == nil {
		writeError(w, errors.New(errors.ErrCodeSceneNotFound, "scene %s not found or expired", id))
		return nil, false
	}
	return sc, true
}

// artifactOptions builds pipeline options from the request query.
// Paths in the returned errors name the offending query parameter.
func artifactOptions(r *http.Request, artifact, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Figure:   q.Get("figure"),
		Artifact: artifact,
		Formats:  []string{format},
		Title:    q.Get("title"),
	}
	if v := q.Get("width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil || width <= 0 {
			return opts, errors.NewAt(errors.ErrCodeInvalidInput, "width", "expected a positive number, got %q", v)
		}
		opts.Width = width
	}
	if v := q.Get("detailed"); v != "" {
		detailed, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.NewAt(errors.ErrCodeInvalidInput, "detailed", "expected a boolean, got %q", v)
		}
		opts.Detailed = detailed
	}
	return opts, nil
}

// requestFormat resolves the document format for an upload from the
// format query parameter, falling back to the Content-Type header.
// Inline uploads have no filename, so extension detection never applies.
func requestFormat(r *http.Request) (manifest.Format, error) {
	if v := r.URL.Query().Get("format"); v != "" {
		return manifest.ParseFormat(v)
	}
	ct := r.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	switch strings.TrimSpace(ct) {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return manifest.FormatYAML, nil
	case "application/toml", "text/x-toml":
		return manifest.FormatTOML, nil
	default:
		return manifest.FormatJSON, nil
	}
}
