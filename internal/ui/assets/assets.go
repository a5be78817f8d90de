// Package assets serves the embedded player page. JavaScript is minified
// once at startup; everything else is served as embedded.
package assets

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed index.html app.js style.css
var rawFS embed.FS

var minified map[string][]byte

func init() {
	m := minify.New()
	m.AddFunc("application/javascript", js.Minify)

	minified = make(map[string][]byte)

	_ = fs.WalkDir(rawFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.ToLower(filepath.Ext(path)) != ".js" {
			return nil
		}
		raw, err := rawFS.ReadFile(path)
		if err != nil {
			return nil
		}
		out, err := m.Bytes("application/javascript", raw)
		if err != nil {
			log.Printf("ASSETS: minify warning: %s: %v (using original)", path, err)
			minified[path] = raw
			return nil
		}
		minified[path] = out
		return nil
	})
}

// Handler serves the player page at / and its assets by name.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}
		if data, ok := minified[path]; ok {
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
			w.Write(data)
			return
		}
		data, err := rawFS.ReadFile(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		switch filepath.Ext(path) {
		case ".html":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		case ".css":
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		}
		w.Write(data)
	})
}
