package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anstrom/nmapreport/internal/config"
	"github.com/anstrom/nmapreport/internal/preview"
)

func TestServeCommandStructure(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Name())

	for _, flag := range []string{"dir", "listen", "port"} {
		require.NotNil(t, serveCmd.Flags().Lookup(flag), "serve should define --%s", flag)
	}
}

func TestServeFlagOverrides(t *testing.T) {
	// The flag merge in runServe: changed flags replace config values.
	cfg := config.Default()
	cfg.Preview.Directory = "/somewhere"
	cfg.Preview.ListenAddr = "127.0.0.1"
	cfg.Preview.Port = 8743

	require.NoError(t, serveCmd.Flags().Set("dir", "/elsewhere"))
	require.NoError(t, serveCmd.Flags().Set("port", "9100"))
	defer func() {
		serveDir = ""
		serveListen = ""
		servePort = 0
	}()

	if serveCmd.Flags().Changed("dir") {
		cfg.Preview.Directory = serveDir
	}
	if serveCmd.Flags().Changed("listen") {
		cfg.Preview.ListenAddr = serveListen
	}
	if serveCmd.Flags().Changed("port") {
		cfg.Preview.Port = servePort
	}

	assert.Equal(t, "/elsewhere", cfg.Preview.Directory)
	assert.Equal(t, "127.0.0.1", cfg.Preview.ListenAddr)
	assert.Equal(t, 9100, cfg.Preview.Port)
	assert.Equal(t, "127.0.0.1:9100", cfg.GetPreviewAddress())
}

func TestServePreviewRouting(t *testing.T) {
	// The serve command hands the merged config to the preview server;
	// exercise that wiring end to end against the router.
	viper.Reset()
	defer viper.Reset()

	cfg := config.Default()
	cfg.Preview.Directory = t.TempDir()

	server, err := preview.New(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	server.GetRouter().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "healthy")
}

func TestServeStopsOnContextCancel(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg := config.Default()
	cfg.Preview.Directory = t.TempDir()
	cfg.Preview.Port = 0 // let the OS pick a free port

	server, err := preview.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("preview server did not stop after context cancellation")
	}
}
