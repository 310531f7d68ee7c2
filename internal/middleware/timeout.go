package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"claimgraph-backend/pkg/api"

	"go.uber.org/zap"
)

// Timeout bounds request handling. The handler runs against a buffered
// writer, so exactly one of the handler's response or the timeout error
// reaches the client; writes that land after the deadline are dropped.
func Timeout(timeout time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{header: http.Header{}}
			done := make(chan struct{})
			r = r.WithContext(ctx)

			go func() {
				defer close(done)
				defer func() {
					if err := recover(); err != nil {
						logger.Error("panic in request handler",
							zap.String("request_id", GetRequestIDFromRequest(r)),
							zap.Any("panic", err),
						)
						if !tw.written() {
							api.Error(tw, http.StatusInternalServerError, "Internal server error")
						}
					}
				}()
				next.ServeHTTP(tw, r)
			}()

			select {
			case <-done:
				tw.flush(w)
			case <-ctx.Done():
				tw.markTimedOut()
				logger.Warn("request timeout",
					zap.String("request_id", GetRequestIDFromRequest(r)),
					zap.String("path", r.URL.Path),
				)
				api.Error(w, http.StatusRequestTimeout, "Request timeout")
			}
		})
	}
}

// timeoutWriter buffers the handler's response until the handler wins the
// race against the deadline. After markTimedOut, writes are rejected with
// http.ErrHandlerTimeout.
type timeoutWriter struct {
	mu          sync.Mutex
	header      http.Header
	buf         bytes.Buffer
	status      int
	wroteHeader bool
	timedOut    bool
}

func (tw *timeoutWriter) Header() http.Header { return tw.header }

func (tw *timeoutWriter) WriteHeader(status int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.status = status
	tw.wroteHeader = true
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.status = http.StatusOK
		tw.wroteHeader = true
	}
	return tw.buf.Write(b)
}

func (tw *timeoutWriter) written() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.wroteHeader
}

func (tw *timeoutWriter) markTimedOut() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.timedOut = true
}

// flush replays the buffered response onto the real writer.
func (tw *timeoutWriter) flush(w http.ResponseWriter) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	dst := w.Header()
	for k, v := range tw.header {
		dst[k] = v
	}
	if !tw.wroteHeader {
		tw.status = http.StatusOK
	}
	w.WriteHeader(tw.status)
	_, _ = w.Write(tw.buf.Bytes())
}
