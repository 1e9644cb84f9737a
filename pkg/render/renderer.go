// Package render turns pages into output for a surface: HTML documents via
// the html subpackage or plain terminal text via the text subpackage.
package render

import (
	"context"

	"github.com/goliatone/go-eventforms/pkg/pages"
)

// Renderer converts a page into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page pages.Page, options RenderOptions) ([]byte, error)
}
