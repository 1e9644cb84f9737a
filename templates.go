package eventforms

import (
	"io/fs"

	"github.com/goliatone/go-eventforms/pkg/render/html"
)

// EmbeddedTemplates exposes the built-in page templates so callers can copy
// or override them (see html.WithTemplateDir) without importing the renderer.
func EmbeddedTemplates() fs.FS {
	return html.Templates()
}
