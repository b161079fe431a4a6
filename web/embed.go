package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var content embed.FS

// GetStaticFS returns the embedded single-page client
func GetStaticFS() fs.FS {
	staticFS, _ := fs.Sub(content, "static")
	return staticFS
}
