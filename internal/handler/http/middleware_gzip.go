package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Codec instances are pooled: the journal feed is the hot path and allocating
// a fresh gzip state per request shows up in profiles.
var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip transparently decompresses gzip request bodies and compresses
// responses for clients that advertise gzip support.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			if !inflateRequestBody(w, r) {
				return
			}
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriters.Get().(*gzip.Writer)
		zw.Reset(w)

		next.ServeHTTP(&deflatingWriter{ResponseWriter: w, zw: zw}, r)

		zw.Close()
		gzipWriters.Put(zw)
	})
}

// inflateRequestBody swaps the request body for its decompressed form. It
// writes the error response itself and reports whether the request should
// proceed.
func inflateRequestBody(w http.ResponseWriter, r *http.Request) bool {
	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(r.Body); err != nil {
		gzipReaders.Put(zr)
		http.Error(w, "Invalid gzip data", http.StatusBadRequest)
		return false
	}

	r.Body = &inflatedBody{zr: zr}
	r.Header.Del("Content-Encoding")
	return true
}

// inflatedBody returns the reader to the pool exactly once, on Close.
type inflatedBody struct {
	zr     *gzip.Reader
	closed bool
}

func (b *inflatedBody) Read(p []byte) (int, error) {
	return b.zr.Read(p)
}

func (b *inflatedBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.zr.Close()
	gzipReaders.Put(b.zr)
	return err
}

type deflatingWriter struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (w *deflatingWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Add("Vary", "Accept-Encoding")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *deflatingWriter) Write(data []byte) (int, error) {
	return w.zw.Write(data)
}
