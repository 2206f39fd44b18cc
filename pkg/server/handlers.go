package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/explorer"
	"github.com/ionutms/schemascope/pkg/export"
	"github.com/ionutms/schemascope/pkg/treemap"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// errorToHTTP maps structured error codes to status codes.
func errorToHTTP(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeSchemaNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRange,
		errors.ErrCodeInvalidSchema, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeError(w, status, string(code), errors.UserMessage(err))
}

// parseFilter assembles a level filter from level_1/level_2/level_3 query
// parameters in start:end form.
func parseFilter(r *http.Request) (*treemap.Filter, error) {
	q := r.URL.Query()
	var f treemap.Filter
	set := false
	for _, l := range []treemap.Level{treemap.Level1, treemap.Level2, treemap.Level3} {
		raw := q.Get(l.String())
		if raw == "" {
			continue
		}
		rng, err := treemap.ParseRange(raw)
		if err != nil {
			return nil, err
		}
		f.SetLevel(l, rng)
		set = true
	}
	if !set {
		return nil, nil
	}
	return &f, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"schemas": s.runner.Names()})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		errorToHTTP(w, err)
		return
	}

	res, err := s.runner.Explore(r.Context(), &explorer.Options{
		Schema:  chi.URLParam(r, "schema"),
		Filter:  filter,
		Refresh: r.URL.Query().Get("refresh") == "1",
	})
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	nodeID := r.URL.Query().Get("id")
	if nodeID == "" {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "query parameter id is required")
		return
	}

	link, err := s.runner.Doc(r.Context(), chi.URLParam(r, "schema"), nodeID)
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// artifactContentTypes maps render formats to their media types.
var artifactContentTypes = map[string]string{
	export.FormatSVG:  "image/svg+xml",
	export.FormatPNG:  "image/png",
	export.FormatDOT:  "text/vnd.graphviz",
	export.FormatJSON: "application/json",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		errorToHTTP(w, err)
		return
	}

	q := r.URL.Query()
	opts := &explorer.Options{
		Schema:     chi.URLParam(r, "schema"),
		Filter:     filter,
		Format:     q.Get("format"),
		Colorscale: q.Get("colorscale"),
		Sorted:     q.Get("sorted") == "1",
		Refresh:    q.Get("refresh") == "1",
	}

	res, err := s.runner.Explore(r.Context(), opts)
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	data, err := s.runner.Render(r.Context(), res, opts)
	if err != nil {
		errorToHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", artifactContentTypes[opts.Format])
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
