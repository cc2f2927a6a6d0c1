package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

// AssetsWithCache wraps a file server over fsys and applies Cache-Control, Vary, and ETag
// handling. Request paths are relative to fsys, so mount it behind http.StripPrefix.
// In dev mode responses must be revalidated on every request.
func AssetsWithCache(fsys fs.FS, dev bool) http.Handler {
	// precompute ETags for every file
	etags := map[string]string{}
	_ = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if et, err := fileETag(fsys, path); err == nil {
			etags["/"+path] = et
		}
		return nil
	})
	cacheControl := "public, max-age=604800, stale-while-revalidate=86400"
	if dev {
		cacheControl = "no-cache"
	}
	files := http.FileServer(http.FS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", cacheControl)
		p := r.URL.Path
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		if et := etags[p]; et != "" {
			w.Header().Set("ETag", et)
			if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

func fileETag(fsys fs.FS, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)) + `"`, nil
}
