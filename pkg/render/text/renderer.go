// Package text renders pages as plain terminal text.
package text

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-eventforms/pkg/pages"
	"github.com/goliatone/go-eventforms/pkg/render"
)

// Name is the registry key for this renderer.
const Name = "text"

// Renderer writes pages as indented plain text. Help markup is stripped.
type Renderer struct {
	strip *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a text renderer.
func New() *Renderer {
	return &Renderer{strip: bluemonday.StrictPolicy()}
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return Name }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, page pages.Page, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, page.Heading)
	fmt.Fprintln(&buf, strings.Repeat("=", len([]rune(page.Heading))))
	if page.Static() {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, page.Tagline)
		return buf.Bytes(), nil
	}

	for _, field := range render.Fields(*page.Schema, options) {
		fmt.Fprintln(&buf)
		label := field.Label
		if field.Required {
			label += " *"
		}
		value := field.Value
		if field.Control == render.ControlPassword && value != "" {
			value = strings.Repeat("•", len([]rune(value)))
		}
		if value == "" {
			value = "(" + field.Placeholder + ")"
		}
		fmt.Fprintf(&buf, "%s: %s\n", label, value)
		if len(field.Options) > 0 {
			fmt.Fprintf(&buf, "  options: %s\n", strings.Join(field.Options, ", "))
		}
		if help := plain(r.strip, field.Help); help != "" {
			fmt.Fprintf(&buf, "  %s\n", help)
		}
		if field.Error != "" {
			fmt.Fprintf(&buf, "  ! %s\n", field.Error)
		}
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "[ %s ]\n", page.Schema.SubmitLabel)
	return buf.Bytes(), nil
}

var plainPolicy = bluemonday.StrictPolicy()

// Plain strips markup from help text for terminal display.
func Plain(markup string) string {
	return plain(plainPolicy, markup)
}

func plain(policy *bluemonday.Policy, markup string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(markup)))
}
