package router

import (
	"net/http"
)

// responseWriter wraps http.ResponseWriter to track whether a response has
// been written, the status code, and the number of body bytes sent. The
// error boundary uses Written to avoid double writes; logging middleware
// reads Status and BytesWritten after the chain completes.
type responseWriter struct {
	http.ResponseWriter
	status  int
	bytes   int
	written bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Written reports whether WriteHeader has been called.
func (w *responseWriter) Written() bool {
	return w.written
}

// Status returns the HTTP status code sent to the client, or 0 when no
// response has been written yet.
func (w *responseWriter) Status() int {
	return w.status
}

// BytesWritten returns the number of response body bytes sent so far.
func (w *responseWriter) BytesWritten() int {
	return w.bytes
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Flush implements http.Flusher when the underlying writer supports it.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
