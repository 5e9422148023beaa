package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/yergin/test-pattern-descriptor/pkg/buildinfo"
	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/pipeline"
	"github.com/yergin/test-pattern-descriptor/pkg/render"
)

type errorBody struct {
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type validateResponse struct {
	Valid   bool       `json:"valid"`
	Name    string     `json:"name,omitempty"`
	Version int        `json:"version,omitempty"`
	Depth   int        `json:"depth,omitempty"`
	Width   int        `json:"width,omitempty"`
	Height  int        `json:"height,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// handleRender renders the posted descriptor and responds with the
// encoded image. Query parameters: format (tiff or png, default tiff),
// full_scale (default true), sequential (default false), no_cache
// (default false).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	source, ok := s.readBody(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatTIFF
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, errors.NewAt(errors.ErrCodeWrongType, "format", "%v", err))
		return
	}

	fullScale, err := queryFlag(r, "full_scale", true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sequential, err := queryFlag(r, "sequential", false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	noCache, err := queryFlag(r, "no_cache", false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Source:     source,
		OverlayDir: s.cfg.OverlayDir,
		Sequential: sequential,
		Formats:    []string{format},
		PlainScale: !fullScale,
		NoCache:    noCache,
		Logger:     s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := result.Artifacts[format]
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.ArtifactHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleValidate checks the posted descriptor without rendering it.
// The verdict is always JSON; invalid documents answer with the same
// status code a render request would have seen.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	source, ok := s.readBody(w, r)
	if !ok {
		return
	}

	doc, _, err := s.runner.Parse(pipeline.Options{Source: source, Logger: s.logger})
	if err == nil {
		var layout *render.Layout
		if layout, err = render.Resolve(doc); err == nil {
			writeJSON(w, http.StatusOK, validateResponse{
				Valid:   true,
				Name:    doc.Name,
				Version: doc.Version,
				Depth:   int(doc.Depth),
				Width:   layout.Width,
				Height:  layout.Height,
			})
			return
		}
	}

	writeJSON(w, statusFor(err), validateResponse{
		Valid: false,
		Error: &errorBody{
			Code:    string(errors.GetCode(err)),
			Path:    errors.GetPath(err),
			Message: err.Error(),
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
	})
}

// readBody reads the request body under the configured size cap. On
// failure it writes the error response and reports false.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			s.writeError(w, r, errors.New(errors.ErrCodeRequestTooLarge,
				"request body exceeds %d bytes", s.cfg.MaxRequestBytes))
		} else {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "read request body"))
		}
		return nil, false
	}
	return data, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", requestIDFrom(r.Context()))
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(errors.GetCode(err)),
		Path:    errors.GetPath(err),
		Message: err.Error(),
	}})
}

// statusFor maps error codes to HTTP status codes. Structural problems
// are bad requests; semantic problems are well-formed but unprocessable.
// A missing file means the document references something this server
// cannot provide, which is the document's fault, not the server's.
func statusFor(err error) int {
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeFileNotFound:
		return http.StatusUnprocessableEntity
	}

	switch errors.KindOf(code) {
	case errors.KindStructural:
		return http.StatusBadRequest
	case errors.KindSemantic:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func queryFlag(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, errors.NewAt(errors.ErrCodeWrongType, name,
			"expected a boolean, got %q", raw)
	}
	return v, nil
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "image/tiff"
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
