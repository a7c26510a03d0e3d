package acceptance

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/centroidhq/centroid/pkg/config"
	"github.com/centroidhq/centroid/pkg/dataset"
	"github.com/centroidhq/centroid/pkg/db"
	"github.com/centroidhq/centroid/pkg/guide"
	"github.com/centroidhq/centroid/pkg/server"
	"github.com/centroidhq/centroid/pkg/server/endpoints"
)

// ServerInstance is a running in-process server for the feature suite.
type ServerInstance struct {
	Server    *server.Server
	ServerURL string
}

// StartServer migrates a fresh SQLite database in dir and starts a
// server on an ephemeral loopback port.
func StartServer(dir string) (*ServerInstance, error) {
	databaseURL := filepath.Join(dir, "centroid-test.db")

	if _, err := db.Migrate(databaseURL); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	database, err := db.Connect(databaseURL, "error")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	registry, err := dataset.NewRegistry(zerolog.Nop())
	if err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}

	g, err := guide.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load guide: %w", err)
	}

	// Port 0 asks the kernel for an ephemeral port.
	cfg := &config.Config{
		BindAddress: "127.0.0.1",
		Port:        0,
		DatabaseURL: databaseURL,
		LogLevel:    "error",
		LogFormat:   "json",
		PageSize:    10,
	}

	s := server.NewServer(cfg, zerolog.Nop(), database, registry, g)
	endpoints.RegisterAll(s)

	addr, err := s.Listen()
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	instance := &ServerInstance{
		Server:    s,
		ServerURL: "http://" + addr,
	}

	go func() { _ = s.Start() }()

	if err := waitForServer(instance.ServerURL, 10*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return instance, nil
}

// Stop shuts the server down, draining in-flight requests.
func (si *ServerInstance) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = si.Server.Shutdown(ctx)
}

// waitForServer polls the status endpoint until it responds or the
// timeout passes.
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/v1/status")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server at %s not ready after %s", serverURL, timeout)
}
