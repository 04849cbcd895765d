package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// compressMinSize is the smallest body worth compressing. Responses are
// buffered up to this size before deciding.
const compressMinSize = 1024

// compressibleTypes covers everything this API serves.
var compressibleTypes = map[string]bool{
	"application/json": true,
	"text/plain":       true,
	"text/html":        true,
}

// gzipWriterPool reduces allocations by reusing gzip writers
var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return w
	},
}

// gzipResponseWriter buffers the response until it can decide whether
// compression is worthwhile, then streams the rest.
type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer
	buffer     []byte
	statusCode int
	decided    bool
	compress   bool
}

func (g *gzipResponseWriter) WriteHeader(statusCode int) {
	if !g.decided {
		g.statusCode = statusCode
	}
}

func (g *gzipResponseWriter) Write(data []byte) (int, error) {
	if g.decided {
		if g.compress {
			return g.gzipWriter.Write(data)
		}
		return g.ResponseWriter.Write(data)
	}

	g.buffer = append(g.buffer, data...)
	if len(g.buffer) > compressMinSize {
		g.decide()
	}
	return len(data), nil
}

// decide settles compression, writes headers, and flushes the buffer.
func (g *gzipResponseWriter) decide() {
	if g.decided {
		return
	}
	g.decided = true

	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(g.Header().Get("Content-Type"), ";")[0]))
	g.compress = len(g.buffer) >= compressMinSize && compressibleTypes[mediaType]

	if g.compress {
		g.Header().Del("Content-Length")
		g.Header().Set("Content-Encoding", "gzip")
		g.Header().Add("Vary", "Accept-Encoding")

		g.gzipWriter = gzipWriterPool.Get().(*gzip.Writer)
		g.gzipWriter.Reset(g.ResponseWriter)

		g.ResponseWriter.WriteHeader(g.statusCode)
		g.gzipWriter.Write(g.buffer) //nolint:errcheck
	} else {
		g.ResponseWriter.WriteHeader(g.statusCode)
		g.ResponseWriter.Write(g.buffer) //nolint:errcheck
	}

	g.buffer = nil
}

// Close flushes any buffered data and returns the gzip writer to the pool.
func (g *gzipResponseWriter) Close() error {
	if !g.decided {
		g.decide()
	}

	if g.gzipWriter != nil {
		err := g.gzipWriter.Close()
		gzipWriterPool.Put(g.gzipWriter)
		g.gzipWriter = nil
		return err
	}
	return nil
}

// Flush implements http.Flusher
func (g *gzipResponseWriter) Flush() {
	if !g.decided {
		g.decide()
	}
	if g.gzipWriter != nil {
		g.gzipWriter.Flush() //nolint:errcheck
	}
	if flusher, ok := g.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Compression returns a middleware that gzips responses for clients that
// accept it. Small responses pass through untouched.
func Compression() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			gzw := &gzipResponseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				buffer:         make([]byte, 0, compressMinSize+1),
			}
			defer gzw.Close()

			next.ServeHTTP(gzw, r)
		})
	}
}
