// Package frontend embeds the static dashboard assets.
package frontend

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticDir embed.FS

// StaticFS returns the embedded dashboard assets rooted at the static
// directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticDir, "static")
	if err != nil {
		// The static directory is embedded at build time, this cannot fail
		// at runtime.
		panic(err)
	}
	return sub
}
