package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadrehq/cadre/core/server"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires address", func(t *testing.T) {
		t.Parallel()

		_, err := server.NewFromConfig(server.Config{})
		require.ErrorIs(t, err, server.ErrMissingAddress)
	})

	t.Run("builds from defaults", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("start returns on context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := server.New("127.0.0.1:0")
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- srv.Start(ctx, handler)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("server did not stop after cancellation")
		}

		require.NoError(t, srv.Stop())
	})

	t.Run("stop on idle server is a no-op", func(t *testing.T) {
		t.Parallel()

		srv := server.New("127.0.0.1:0")
		require.NoError(t, srv.Stop())
	})

	t.Run("run exits clean after cancellation", func(t *testing.T) {
		t.Parallel()

		srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, handler)()
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("run did not exit after cancellation")
		}
	})

	t.Run("second start fails while running", func(t *testing.T) {
		t.Parallel()

		srv := server.New("127.0.0.1:0")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() { _ = srv.Start(ctx, handler) }()
		time.Sleep(50 * time.Millisecond)

		err := srv.Start(ctx, handler)
		require.ErrorIs(t, err, server.ErrServerAlreadyRunning)

		cancel()
		require.NoError(t, srv.Stop())
	})
}
