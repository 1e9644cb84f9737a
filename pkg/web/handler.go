// Package web serves the pages over HTTP. GET renders a page, POST runs the
// submission pipeline of the page's form. Form posts get HTML back; JSON
// posts get the result shapes described by the OpenAPI export.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-eventforms/pkg/navigation"
	"github.com/goliatone/go-eventforms/pkg/notify"
	"github.com/goliatone/go-eventforms/pkg/pages"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
	"github.com/goliatone/go-eventforms/pkg/render"
	"github.com/goliatone/go-eventforms/pkg/render/html"
	"github.com/goliatone/go-eventforms/pkg/validation"
)

const maxBodyBytes = 1 << 20

// Handler owns the page routes.
type Handler struct {
	renderer render.Renderer
	logger   zerolog.Logger
	mount    []pages.Option
	metrics  http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger attaches a structured logger for requests and submissions.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithRenderer replaces the default HTML renderer.
func WithRenderer(r render.Renderer) Option {
	return func(h *Handler) {
		if r != nil {
			h.renderer = r
		}
	}
}

// WithMountOptions are applied every time a form is mounted for a request.
func WithMountOptions(opts ...pages.Option) Option {
	return func(h *Handler) {
		h.mount = append(h.mount, opts...)
	}
}

// WithMetricsHandler exposes a metrics endpoint at /metrics.
func WithMetricsHandler(mh http.Handler) Option {
	return func(h *Handler) {
		h.metrics = mh
	}
}

// New builds a Handler. Without WithRenderer the embedded HTML templates are
// used.
func New(options ...Option) (*Handler, error) {
	h := &Handler{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	if h.renderer == nil {
		r, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("web: %w", err)
		}
		h.renderer = r
	}
	return h, nil
}

// Router returns the page router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	for _, page := range pages.All() {
		r.Get(page.Route, h.show(page))
		if !page.Static() {
			r.Post(page.Route, h.submit(page))
		}
	}
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics)
	}
	return r
}

func (h *Handler) show(page pages.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := render.RenderOptions{Notice: takeNotice(w, r)}
		h.write(w, r, page, opts, http.StatusOK)
	}
}

func (h *Handler) submit(page pages.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wantsJSON := isJSON(r)
		values, err := readValues(w, r, wantsJSON)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var (
			notice   *pipeline.Notification
			redirect string
		)
		capture := pipeline.NotificationFunc(func(_ context.Context, n pipeline.Notification) {
			notice = &n
		})
		nav := pipeline.NavigatorFunc(func(_ context.Context, route string) error {
			redirect = route
			return nil
		})

		log := h.logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		opts := append(slices.Clone(h.mount),
			pages.WithLogger(log),
			pages.WithPipelineOptions(
				pipeline.WithNotifier(notify.Multi{capture, notify.Log{Logger: log}}),
				pipeline.WithNavigator(nav),
			),
		)
		form, err := pages.Mount(page, opts...)
		if err != nil {
			log.Error().Err(err).Str("page", page.Route).Msg("mount form")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		defer form.Close()

		for _, name := range page.Schema.Names() {
			raw, ok := values[name]
			if !ok {
				continue
			}
			if err := form.SetField(name, raw); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		res, err := form.Submit(r.Context())
		if err != nil {
			log.Error().Err(err).Str("page", page.Route).Msg("submit")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if wantsJSON {
			writeResult(w, res)
			return
		}

		switch res.Status {
		case pipeline.StatusValidationFailed:
			h.write(w, r, page, render.OptionsFrom(form), http.StatusUnprocessableEntity)
		case pipeline.StatusActionFailed:
			opts := render.OptionsFrom(form)
			opts.Notice = notice
			h.write(w, r, page, opts, http.StatusBadGateway)
		default:
			if notice != nil {
				putNotice(w, *notice)
			}
			http.Redirect(w, r, landing(redirect), http.StatusSeeOther)
		}
	}
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, page pages.Page, opts render.RenderOptions, status int) {
	out, err := h.renderer.Render(r.Context(), page, opts)
	if err != nil {
		h.logger.Error().Err(err).Str("page", page.Route).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

// landing maps a redirect target to a route this server renders. Targets
// without a page fall back to the welcome page.
func landing(route string) string {
	if route == "" {
		return navigation.RouteWelcome
	}
	if _, ok := pages.Lookup(route); ok {
		return route
	}
	return navigation.RouteWelcome
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func readValues(w http.ResponseWriter, r *http.Request, wantsJSON bool) (map[string]any, error) {
	if wantsJSON {
		var values map[string]any
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.UseNumber()
		if err := dec.Decode(&values); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		for k, v := range values {
			if n, ok := v.(json.Number); ok {
				values[k] = n.String()
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.New("invalid form body")
	}
	values := make(map[string]any, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	return values, nil
}

type resultBody struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Title    string `json:"title,omitempty"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

type errorsBody struct {
	Errors validation.Errors `json:"errors"`
}

func writeResult(w http.ResponseWriter, res pipeline.Result) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	switch res.Status {
	case pipeline.StatusValidationFailed:
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = enc.Encode(errorsBody{Errors: res.Errors})
	case pipeline.StatusActionFailed:
		w.WriteHeader(http.StatusBadGateway)
		_ = enc.Encode(resultBody{ID: res.ID, Status: res.Status.String(), Message: res.Message})
	default:
		_ = enc.Encode(resultBody{
			ID:       res.ID,
			Status:   res.Status.String(),
			Title:    res.Title,
			Message:  res.Message,
			Redirect: res.Redirect,
		})
	}
}
