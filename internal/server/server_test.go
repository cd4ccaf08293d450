package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServe_GracefulShutdown(t *testing.T) {
	srv, err := New(testServerConfig(), zap.NewNop(), Deps{Source: mockSource(t)})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 5 * time.Second}
	defer client.CloseIdleConnections()
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after the context was canceled")
	}
}

func TestRun_ListenFailure(t *testing.T) {
	cfg := testServerConfig()
	cfg.ListenAddr = "127.0.0.1:-1"
	srv, err := New(cfg, zap.NewNop(), Deps{Source: mockSource(t)})
	require.NoError(t, err)

	err = srv.Run(context.Background())
	assert.ErrorContains(t, err, "failed to listen on 127.0.0.1:-1")
}

func TestClose_WaitsForTrackedFeeds(t *testing.T) {
	srv, err := New(testServerConfig(), zap.NewNop(), Deps{Source: mockSource(t)})
	require.NoError(t, err)

	require.True(t, srv.trackStream())
	done := make(chan struct{})
	go func() {
		srv.Close()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Close returned while a feed was still registered")
	case <-time.After(50 * time.Millisecond):
	}
	assert.False(t, srv.trackStream(), "no feed may register once Close has started")

	srv.streams.Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return after the last feed exited")
	}
	srv.Close()
}

// TestClose_ConcurrentWithNewFeeds is meaningful under -race: every feed that
// registers is counted before Close waits.
func TestClose_ConcurrentWithNewFeeds(t *testing.T) {
	srv, err := New(testServerConfig(), zap.NewNop(), Deps{Source: mockSource(t)})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if srv.trackStream() {
				time.Sleep(time.Millisecond)
				srv.streams.Done()
			}
		}()
	}
	srv.Close()
	wg.Wait()
	assert.False(t, srv.trackStream())
}
