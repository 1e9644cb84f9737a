// Package html renders pages as standalone HTML documents using pongo2
// templates, go-theme tokens and a bluemonday policy for help markup.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-eventforms/pkg/pages"
	"github.com/goliatone/go-eventforms/pkg/render"
)

// Name is the registry key for this renderer.
const Name = "html"

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme applies theme tokens and CSS variables.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithTemplates overrides the embedded templates.
func WithTemplates(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// WithTemplateDir loads overrides from disk ahead of the embedded templates.
func WithTemplateDir(dir string) Option {
	return func(r *Renderer) {
		r.baseDir = dir
	}
}

// Renderer renders pages to HTML.
type Renderer struct {
	engine    *Engine
	theme     *theme.RendererConfig
	templates fs.FS
	baseDir   string
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the renderer and its template engine.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{templates: Templates()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	engineOpts := []EngineOption{WithFS(r.templates)}
	if r.baseDir != "" {
		engineOpts = append(engineOpts, WithBaseDir(r.baseDir))
	}
	engine, err := NewEngine(engineOpts...)
	if err != nil {
		return nil, err
	}
	r.engine = engine
	return r, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return Name }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render produces a full document for the page.
func (r *Renderer) Render(ctx context.Context, page pages.Page, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil || r.engine == nil {
		return nil, errors.New("html: renderer is nil")
	}

	data := pongo2.Context{
		"title":   page.Title,
		"heading": page.Heading,
		"theme":   buildThemeView(r.theme),
	}
	if options.Notice != nil {
		data["notice"] = *options.Notice
	}

	if page.Static() {
		data["tagline"] = page.Tagline
		out, err := r.engine.RenderTemplate("welcome", data)
		return []byte(out), err
	}

	if err := page.Schema.Bind(slices.Sorted(maps.Keys(options.Errors))...); err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}

	fields := render.Fields(*page.Schema, options)
	for i := range fields {
		fields[i].Help = SanitizeHelp(fields[i].Help)
	}
	data["form_id"] = page.Schema.ID
	data["action"] = page.Route
	data["fields"] = fields
	data["hidden"] = render.MergeHidden([]render.HiddenField{render.Hidden("_form", page.Schema.ID)}, options.Hidden...)
	data["submitting"] = options.Submitting
	data["submit_label"] = page.Schema.SubmitLabel

	out, err := r.engine.RenderTemplate("form", data)
	return []byte(out), err
}
