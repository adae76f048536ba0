package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/handbook"
	hbhttp "github.com/fwojciec/handbook/http"
	"github.com/fwojciec/handbook/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postAsk(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	srv := hbhttp.NewServer(&mock.Asker{}, nil, discardLogger())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Ask(t *testing.T) {
	t.Parallel()

	t.Run("returns answer as JSON", func(t *testing.T) {
		t.Parallel()

		var got *handbook.Question
		asker := &mock.Asker{
			AskFn: func(_ context.Context, q *handbook.Question) (*handbook.Answer, error) {
				got = q
				return &handbook.Answer{
					Text:     "Dinner is at 6pm.",
					Prompt:   "internal prompt",
					Sections: []string{"3."},
					Used:     2,
					Limit:    10,
				}, nil
			},
		}
		srv := hbhttp.NewServer(asker, nil, discardLogger())

		rec := postAsk(t, srv, `{"question": "When is dinner?", "code": "abc"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, "When is dinner?", got.Text)
		assert.Equal(t, "abc", got.AccessCode)
		assert.JSONEq(t, `{"answer":"Dinner is at 6pm.","sections":["3."],"used":2,"limit":10}`, rec.Body.String())
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		t.Parallel()

		srv := hbhttp.NewServer(&mock.Asker{}, nil, discardLogger())

		rec := postAsk(t, srv, `{"question":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	statusTests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"invalid", handbook.Errorf(handbook.EINVALID, "question required"), http.StatusBadRequest, "question required"},
		{"forbidden", handbook.Errorf(handbook.EFORBIDDEN, "query limit reached for this code"), http.StatusForbidden, "query limit reached for this code"},
		{"not found", handbook.Errorf(handbook.ENOTFOUND, "no handbook loaded"), http.StatusNotFound, "no handbook loaded"},
		{"internal", errors.New("connection reset by peer"), http.StatusInternalServerError, "Internal error."},
	}
	for _, tt := range statusTests {
		t.Run("maps "+tt.name+" errors", func(t *testing.T) {
			t.Parallel()

			asker := &mock.Asker{
				AskFn: func(context.Context, *handbook.Question) (*handbook.Answer, error) {
					return nil, tt.err
				},
			}
			srv := hbhttp.NewServer(asker, nil, discardLogger())

			rec := postAsk(t, srv, `{"question": "q"}`)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body["error"])
		})
	}

	t.Run("rate limits per access code", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(context.Context, *handbook.Question) (*handbook.Answer, error) {
				return &handbook.Answer{Text: "ok"}, nil
			},
		}
		srv := hbhttp.NewServer(asker, hbhttp.NewKeyLimiter(0.001, 1), discardLogger())

		assert.Equal(t, http.StatusOK, postAsk(t, srv, `{"question": "q", "code": "a"}`).Code)

		limited := postAsk(t, srv, `{"question": "q", "code": "a"}`)
		assert.Equal(t, http.StatusTooManyRequests, limited.Code)
		assert.Equal(t, "1", limited.Header().Get("Retry-After"))

		assert.Equal(t, http.StatusOK, postAsk(t, srv, `{"question": "q", "code": "b"}`).Code)
	})
}

func TestKeyLimiter_Allow(t *testing.T) {
	t.Parallel()

	l := hbhttp.NewKeyLimiter(0.001, 2)

	assert.True(t, l.Allow("x"))
	assert.True(t, l.Allow("x"))
	assert.False(t, l.Allow("x"))
	assert.True(t, l.Allow("y"))
}

func TestKeyLimiter_ForgetsIdleKeys(t *testing.T) {
	t.Parallel()

	l := hbhttp.NewKeyLimiter(1, 1)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range 50 {
		assert.True(t, l.AllowAt(fmt.Sprintf("random-%d", i), start))
	}
	assert.Equal(t, 50, l.Len())

	assert.True(t, l.AllowAt("team", start.Add(2*time.Minute)))
	assert.Equal(t, 1, l.Len())
}

func TestKeyLimiter_BoundsTrackedKeys(t *testing.T) {
	t.Parallel()

	l := hbhttp.NewKeyLimiter(1, 1)
	l.MaxKeys = 2
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, l.AllowAt("a", start))
	assert.True(t, l.AllowAt("b", start))
	assert.False(t, l.AllowAt("c", start), "new keys are refused while all tracked keys are active")
	assert.Equal(t, 2, l.Len())

	// Buckets refill after a second, which frees room without waiting for the
	// periodic sweep.
	assert.True(t, l.AllowAt("c", start.Add(2*time.Second)))
	assert.LessOrEqual(t, l.Len(), 2)
}
