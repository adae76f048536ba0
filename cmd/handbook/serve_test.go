package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/handbook"
	main "github.com/fwojciec/handbook/cmd/handbook"
	"github.com/fwojciec/handbook/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a buffer written by the server goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeCmd_Serve(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stdout := &syncBuffer{}
	deps := &main.Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: io.Discard,
		Logger: slog.New(slog.DiscardHandler),
		Asker: &mock.Asker{
			AskFn: func(_ context.Context, q *handbook.Question) (*handbook.Answer, error) {
				return &handbook.Answer{Text: "echo: " + q.Text, Sections: []string{"1."}}, nil
			},
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- (&main.ServeCmd{}).Serve(deps, ln)
	}()

	url := "http://" + ln.Addr().String()

	resp, err := http.Post(url+"/api/ask", "application/json", strings.NewReader(`{"question":"hi"}`))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"answer":"echo: hi","sections":["1."]}`, string(body))

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Contains(t, stdout.String(), "Listening on "+ln.Addr().String())
}
