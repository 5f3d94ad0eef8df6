// ABOUTME: HTTP request ID and logging middleware with consistent log.Printf key=value lines.
// ABOUTME: Request IDs are ULIDs, echoed back in the X-Request-Id response header.
package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestIDHeader carries the request ID on both requests and responses.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by requestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestID assigns each request an ID, reusing one supplied by the client.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = ulid.Make().String()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validRequestID accepts 1-128 characters of [A-Za-z0-9._-], which covers
// ULIDs and UUIDs and keeps log lines free of spaces and '='.
func validRequestID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func webRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		log.Printf("web request id=%s method=%s path=%s status=%d bytes=%d duration=%s remote=%s",
			RequestIDFromContext(r.Context()),
			r.Method,
			r.URL.Path,
			status,
			rec.bytes,
			time.Since(start).Round(time.Microsecond),
			r.RemoteAddr,
		)
	})
}
