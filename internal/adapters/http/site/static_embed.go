package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// pagesFS is the embedded static/ directory.
var pagesFS fs.FS = func() fs.FS { //nolint:gochecknoglobals // embedded assets
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}()

// FS returns an http.FileSystem for the embedded pages.
func FS() http.FileSystem {
	return http.FS(pagesFS)
}
