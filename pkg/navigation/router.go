// Package navigation implements the Navigator the submission pipeline
// redirects through: a registry of known routes plus the visit history.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ErrUnknownRoute is returned when navigating to a route nobody registered.
var ErrUnknownRoute = errors.New("navigation: unknown route")

// Handler is invoked when its route becomes current.
type Handler func(ctx context.Context, route string) error

// Router records the current route and dispatches to registered handlers.
type Router struct {
	mu       sync.Mutex
	handlers map[string]Handler
	history  []string
	logger   zerolog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithRoute registers a route; a nil handler only marks the route as known.
func WithRoute(route string, h Handler) Option {
	return func(r *Router) {
		r.handlers[normalize(route)] = h
	}
}

// NewRouter builds a Router starting at RouteWelcome with the default
// routes registered.
func NewRouter(options ...Option) *Router {
	r := &Router{
		handlers: map[string]Handler{
			RouteWelcome:     nil,
			RouteEvents:      nil,
			RouteCreateEvent: nil,
			RouteBookTicket:  nil,
		},
		history: []string{RouteWelcome},
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Handle registers or replaces the handler for a route.
func (r *Router) Handle(route string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[normalize(route)] = h
}

// NavigateTo makes route current and runs its handler, if any.
func (r *Router) NavigateTo(ctx context.Context, route string) error {
	route = normalize(route)

	r.mu.Lock()
	h, ok := r.handlers[route]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	r.history = append(r.history, route)
	r.mu.Unlock()

	r.logger.Debug().Str("route", route).Msg("navigate")
	if h == nil {
		return nil
	}
	return h(ctx, route)
}

// Current returns the route last navigated to.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// History returns every visited route, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

func normalize(route string) string {
	trimmed := strings.TrimSpace(route)
	if trimmed == "" {
		return RouteWelcome
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
	}
	return trimmed
}
