package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmorenz/tasktree/internal/domain/activity"
	"github.com/tmorenz/tasktree/internal/domain/project"
	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/sqlite"
	"github.com/tmorenz/tasktree/internal/transport"
	"github.com/tmorenz/tasktree/internal/ws"
)

// TestServer is a fully wired API server over an in-memory database, for
// tests that exercise the HTTP surface end to end.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Hub    *ws.Hub

	keys *sqlite.KeyRepository
}

// Options control the optional parts of the wiring.
type Options struct {
	// AuthEnabled mounts the bearer-token middleware. Mint keys with
	// MintKey before making requests.
	AuthEnabled bool
}

// New starts a server with auth disabled.
func New(t *testing.T) *TestServer {
	return NewWithOptions(t, Options{})
}

// NewWithOptions starts a server wired like cmd/server, but against an
// in-memory database named after the test.
func NewWithOptions(t *testing.T, opts Options) *TestServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sqlite.New(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), 10)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)
	keyRepo := sqlite.NewKeyRepository(db)

	projectSvc := project.NewService(projectRepo, taskRepo, activityRepo, nil)
	taskSvc := task.NewService(taskRepo, searchRepo, activityRepo, nil)
	activitySvc := activity.NewService(activityRepo, nil)

	hub := ws.NewHub(nil)
	go hub.Run()

	cfg := transport.Config{
		Projects: projectSvc,
		Tasks:    taskSvc,
		Activity: activitySvc,
		Events:   hub,
	}
	if opts.AuthEnabled {
		cfg.Auth = transport.AuthMiddleware(keyRepo)
	}

	server := httptest.NewServer(transport.NewServer(cfg))

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
		_ = db.Close()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		Hub:    hub,
		keys:   keyRepo,
	}
}

// MintKey stores an API key resolving to the given user.
func (ts *TestServer) MintKey(t *testing.T, key string, userID int64) {
	t.Helper()
	require.NoError(t, ts.keys.Mint(context.Background(), key, userID, "test key"))
}

// WSURL returns the websocket endpoint for the live update feed.
func (ts *TestServer) WSURL() string {
	return "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws"
}
