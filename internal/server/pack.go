package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/pipeline"
)

// PackResponse summarizes a pipeline run. Artifacts are base64 encoded
// in JSON.
type PackResponse struct {
	RunID      string            `json:"run_id"`
	Name       string            `json:"name"`
	Darts      int               `json:"darts"`
	Circles    int               `json:"circles"`
	Triangles  int               `json:"triangles"`
	Iterations int               `json:"iterations"`
	Error      float64           `json:"error"`
	Radii      []float64         `json:"radii,omitempty"`
	PackHit    bool              `json:"pack_hit"`
	RenderHit  bool              `json:"render_hit"`
	Artifacts  map[string][]byte `json:"artifacts"`
}

func newPackResponse(res *pipeline.Result) PackResponse {
	out := PackResponse{
		RunID:      res.RunID,
		Name:       res.Name,
		Darts:      res.Stats.Darts,
		Circles:    res.Stats.Circles,
		Triangles:  res.Stats.Triangles,
		Iterations: res.Stats.Iterations,
		Error:      res.Stats.Error,
		PackHit:    res.CacheInfo.PackHit,
		RenderHit:  res.CacheInfo.RenderHit,
		Artifacts:  res.Artifacts,
	}
	if res.Packing != nil {
		out.Radii = res.Packing.Radii
	}
	return out
}

var errBadRequest = perrors.New(perrors.ErrCodeInvalidInput, "invalid request body")

// decodeOptions reads pipeline options from the request body. The file
// source is never taken from a request.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return opts, fmt.Errorf("%w: body exceeds %d bytes", errBadRequest, tooLarge.Limit)
		}
		return opts, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	opts.File = ""
	opts.Logger = s.logger.With("id", RequestID(r.Context()))
	return opts, nil
}

func (s *Server) execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.runner.Execute(ctx, opts)
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPackResponse(res))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Run-Id", res.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}
