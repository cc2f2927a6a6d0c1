package middleware

import (
	"io"
	"net/http"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compress negotiates zstd, gzip or deflate for chi's default compressible types.
// zstd and gzip use the klauspost encoders; zstd wins when the client accepts it.
func Compress(level int) func(http.Handler) http.Handler {
	c := chiMid.NewCompressor(level)
	c.SetEncoder("gzip", gzipEncoder)
	c.SetEncoder("zstd", zstdEncoder)
	return c.Handler
}

func gzipEncoder(w io.Writer, level int) io.Writer {
	gw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil
	}
	return gw
}

func zstdEncoder(w io.Writer, level int) io.Writer {
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil
	}
	return enc
}
