// Package web embeds the single-page dashboard.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:static
var FS embed.FS

// GetHTTPFS returns the embedded dashboard for HTTP serving.
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(sub, "index.html"); err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}
