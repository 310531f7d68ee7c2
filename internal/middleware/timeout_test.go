package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTimeout(t *testing.T) {
	logger := zap.NewNop()

	t.Run("fast responses pass through intact", func(t *testing.T) {
		h := Timeout(time.Second, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("slow handlers get a 408", func(t *testing.T) {
		release := make(chan struct{})
		wrote := make(chan error, 1)
		h := Timeout(10*time.Millisecond, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			_, err := w.Write([]byte("too late"))
			wrote <- err
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusRequestTimeout, rec.Code)
		assert.Contains(t, rec.Body.String(), "Request timeout")

		// Release the handler after the timeout response went out; its write
		// must be rejected and must not reach the client.
		close(release)
		require.ErrorIs(t, <-wrote, http.ErrHandlerTimeout)
		assert.Contains(t, rec.Body.String(), "Request timeout")
		assert.NotContains(t, rec.Body.String(), "too late")
	})

	t.Run("handler headers written before the deadline are dropped too", func(t *testing.T) {
		release := make(chan struct{})
		done := make(chan struct{})
		h := Timeout(10*time.Millisecond, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			<-release
			close(done)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		close(release)
		<-done

		assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	})
}
