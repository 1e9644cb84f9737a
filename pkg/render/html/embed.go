package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embedded embed.FS

// Templates returns the built-in template set.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
