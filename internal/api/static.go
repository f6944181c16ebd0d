package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const indexFile = "index.html"

// spaHandler serves files from the frontend build directory and falls back
// to index.html for anything else so client-side routes resolve.
func spaHandler(dir string, log *zap.Logger) http.HandlerFunc {
	root, err := filepath.Abs(dir)
	if err != nil {
		root = dir
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if name, ok := resolve(root, r.URL.Path); ok {
			if serveFile(w, r, name) {
				return
			}
		}
		if !serveFile(w, r, filepath.Join(root, indexFile)) {
			log.Warn("frontend index missing", zap.String("dir", root))
			writeError(w, http.StatusNotFound, "frontend build not found")
		}
	}
}

// resolve maps a URL path to a regular file under root.
func resolve(root, urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	name := filepath.Join(root, filepath.FromSlash(clean))
	if name != root && !strings.HasPrefix(name, root+string(filepath.Separator)) {
		return "", false
	}
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return name, true
}

// serveFile writes name with a content type inferred from its extension.
// It reports false when the file cannot be opened.
func serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
