package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Inline-encoded room and phase images make for large JSON payloads, so both
// request and response bodies speak gzip when the client does. Writers and
// readers are pooled to keep allocation off the request path.

var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			reader := gzipReaderPool.Get().(*gzip.Reader)
			if err := reader.Reset(r.Body); err != nil {
				gzipReaderPool.Put(reader)
				writeError(w, r, ErrUnreadableBody)
				return
			}

			r.Body = &pooledBodyReader{
				Reader: reader,
				close: func() {
					reader.Close()
					gzipReaderPool.Put(reader)
				},
			}
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		writer := gzipWriterPool.Get().(*gzip.Writer)
		gz := &gzipResponseWriter{ResponseWriter: w, gzipWriter: writer}
		defer func() {
			gz.finish()
			gzipWriterPool.Put(writer)
		}()

		next.ServeHTTP(gz, r)
	})
}

// pooledBodyReader hands the gzip reader back to the pool when the request
// body is closed.
type pooledBodyReader struct {
	io.Reader
	close func()
}

func (p *pooledBodyReader) Close() error {
	p.close()
	return nil
}

// gzipResponseWriter compresses the response body lazily: the gzip writer is
// bound to the connection on the first Write, so empty-bodied responses stay
// uncompressed.
type gzipResponseWriter struct {
	http.ResponseWriter

	gzipWriter *gzip.Writer
	started    bool
}

func (g *gzipResponseWriter) WriteHeader(statusCode int) {
	g.ResponseWriter.WriteHeader(statusCode)
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	if !g.started {
		g.Header().Set("Content-Encoding", "gzip")
		g.Header().Del("Content-Length")
		g.gzipWriter.Reset(g.ResponseWriter)
		g.started = true
	}
	return g.gzipWriter.Write(b)
}

func (g *gzipResponseWriter) finish() {
	if g.started {
		g.gzipWriter.Close()
	}
}
