package server_test

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kishorefa/Sainxt-platform-backend/internal/config"
	"github.com/kishorefa/Sainxt-platform-backend/internal/server"
)

func TestShutdownTimeoutComesFromConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := server.NewHTTPServer(gin.New(), config.Config{HTTPShutdownTimeout: 3 * time.Second})
	require.Equal(t, 3*time.Second, srv.ShutdownTimeout)
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := server.NewHTTPServer(gin.New(), config.Config{HTTPShutdownTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}
