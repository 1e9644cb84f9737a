package eventforms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-eventforms/pkg/openapi"
	"github.com/goliatone/go-eventforms/pkg/pages"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
	"github.com/goliatone/go-eventforms/pkg/render"
	"github.com/goliatone/go-eventforms/pkg/render/html"
	"github.com/goliatone/go-eventforms/pkg/render/text"
)

// ErrUnknownPage is returned when a route or form ID matches no page.
var ErrUnknownPage = errors.New("eventforms: unknown page")

// Page aliases pages.Page for callers that only import the root package.
type Page = pages.Page

// Result is the outcome of one submit attempt.
type Result = pipeline.Result

// Notification is a single toast sent on terminal outcomes.
type Notification = pipeline.Notification

// RenderOptions carries live form state into a render.
type RenderOptions = render.RenderOptions

// Mount looks up a data-entry page by route or form ID and binds its action.
func Mount(key string, options ...pages.Option) (*pipeline.Orchestrator, error) {
	page, ok := pages.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, key)
	}
	return pages.Mount(page, options...)
}

// RenderHTML renders the page behind key as a standalone HTML document. A
// non-nil orchestrator supplies current values and inline errors.
func RenderHTML(ctx context.Context, key string, form *pipeline.Orchestrator, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderPage(ctx, renderer, key, form)
}

// RenderText renders the page behind key as plain terminal text.
func RenderText(ctx context.Context, key string, form *pipeline.Orchestrator) ([]byte, error) {
	return renderPage(ctx, text.New(), key, form)
}

func renderPage(ctx context.Context, renderer render.Renderer, key string, form *pipeline.Orchestrator) ([]byte, error) {
	page, ok := pages.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, key)
	}
	return renderer.Render(ctx, page, render.OptionsFrom(form))
}

// ExportOpenAPI describes every form as an OpenAPI document encoded as
// "json" or "yaml".
func ExportOpenAPI(ctx context.Context, format string, options ...openapi.Option) ([]byte, error) {
	doc, err := openapi.Document(ctx, pages.All(), options...)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return openapi.MarshalJSON(doc)
	case "yaml", "yml":
		return openapi.MarshalYAML(doc)
	default:
		return nil, fmt.Errorf("eventforms: unsupported schema format %q", format)
	}
}
