package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-tyre-shop/internal/utils"
)

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

// withGZip inflates gzip request bodies and compresses responses for
// clients that accept gzip. Multipart uploads are passed through as sent.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			gzipReader := gzipReaderPool.Get().(*gzip.Reader)
			if err := gzipReader.Reset(r.Body); err != nil {
				gzipReaderPool.Put(gzipReader)
				_ = utils.WriteError(w, http.StatusBadRequest, "Invalid gzip data")
				return
			}

			r.Body = &wrappedReadCloser{
				Reader: gzipReader,
				OnClose: func() {
					_ = gzipReader.Close()
					gzipReaderPool.Put(gzipReader)
				},
			}
			r.Header.Del("Content-Encoding")
			r.Header.Del("Content-Length")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gzipWriter := gzipWriterPool.Get().(*gzip.Writer)
		gzipWriter.Reset(w)

		gzipRW := &gzipResponseWriter{ResponseWriter: w, gzipWriter: gzipWriter}
		defer func() {
			if gzipRW.wroteBody {
				_ = gzipWriter.Close()
			} else if gzipRW.status != 0 && !gzipRW.headerSent {
				w.WriteHeader(gzipRW.status)
			}
			gzipWriterPool.Put(gzipWriter)
		}()

		next.ServeHTTP(gzipRW, r)
	})
}

type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
	}
	return nil
}

// gzipResponseWriter compresses the body. Headers are only switched to gzip
// once there is a body, so empty answers stay empty.
type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer

	status     int
	headerSent bool
	wroteBody  bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.headerSent || w.status != 0 {
		return
	}
	w.status = statusCode
	if statusCode == http.StatusNoContent || statusCode == http.StatusNotModified {
		w.headerSent = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteBody {
		w.wroteBody = true
		header := w.Header()
		header.Set("Content-Encoding", "gzip")
		header.Add("Vary", "Accept-Encoding")
		header.Del("Content-Length")

		status := w.status
		if status == 0 {
			status = http.StatusOK
		}
		w.headerSent = true
		w.ResponseWriter.WriteHeader(status)
	}
	return w.gzipWriter.Write(data)
}
