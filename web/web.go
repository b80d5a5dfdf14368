// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates static
var files embed.FS

func sub(dir string) http.FileSystem {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return http.FS(f)
}

// Templates is rooted at templates/, so names read "layouts/main".
func Templates() http.FileSystem { return sub("templates") }

func Static() http.FileSystem { return sub("static") }
