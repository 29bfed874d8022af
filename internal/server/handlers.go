package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
	"github.com/NCI-Agency/anet-orgchart/pkg/source"
)

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{
		Code:      code,
		Message:   message,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

// writeFailure maps err to a status through its error code. Uncoded
// deadline errors are reported as timeouts.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		switch {
		case stderrors.Is(err, context.DeadlineExceeded):
			code = errors.ErrCodeTimeout
		default:
			code = errors.ErrCodeInternal
		}
	}
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "id", RequestID(r.Context()))
	}
	writeError(w, status, string(code), errors.UserMessage(err))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	opts, format, err := s.chartOptions(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	ctx, cancel := s.fetchContext(r.Context())
	defer cancel()

	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	if res.CacheInfo.FetchHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	opts := s.baseOptions(r)

	ctx, cancel := s.fetchContext(r.Context())
	defer cancel()

	tree, err := s.runner.Fetch(ctx, opts)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	if err := source.ValidateOrgUUID(id); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := s.runner.Invalidate(r.Context(), id); err != nil {
		s.writeFailure(w, r, errors.Wrap(errors.ErrCodeInternal, err, "invalidate cache"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// chartOptions builds pipeline options from the server defaults and the
// query string.
func (s *Server) chartOptions(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()
	opts := s.baseOptions(r)

	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, "", err
	}
	opts.Formats = []string{format}

	if v := q.Get("depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, "", errors.New(errors.ErrCodeInvalidInput, "invalid depth %q", v)
		}
		opts.DepthLimit = n
	}
	if v := q.Get("filter"); v != "" {
		opts.Filter = v
	}
	for name, dst := range map[string]*float64{"width": &opts.Width, "height": &opts.Height} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return opts, "", errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v)
		}
		*dst = f
	}
	if q.Has("symbols") {
		opts.Symbols = queryBool(r, "symbols")
	}
	if q.Has("interactive") {
		opts.Interactive = queryBool(r, "interactive")
	}
	if v := q.Get("renderer"); v != "" {
		if err := pipeline.ValidateRenderer(v); err != nil {
			return opts, "", err
		}
		opts.Renderer = v
	}
	return opts, format, nil
}

// baseOptions copies the configured defaults field by field so that every
// request is validated afresh.
func (s *Server) baseOptions(r *http.Request) pipeline.Options {
	d := s.defaults
	return pipeline.Options{
		OrgUUID:     chi.URLParam(r, "uuid"),
		Refresh:     queryBool(r, "refresh"),
		DepthLimit:  d.DepthLimit,
		Filter:      d.Filter,
		Symbols:     d.Symbols,
		Width:       d.Width,
		Height:      d.Height,
		Detailed:    d.Detailed,
		Interactive: d.Interactive,
		Renderer:    d.Renderer,
		Geometry:    d.Geometry,
		Ranks:       d.Ranks,
		Locale:      d.Locale,
		Logger:      d.Logger,
	}
}

func (s *Server) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.FetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.FetchTimeout)
}

func queryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
