package server

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vinsync-io/vinsync/pkg/log"
)

// Server is the common interface for long-running components managed
// together: the control API, the scheduler and the settings watcher.
type Server interface {
	Start(ctx context.Context) error
}

// Manager runs a set of servers in parallel and stops them together.
type Manager struct {
	servers []Server
}

// NewManager creates a manager over the given servers.
func NewManager(servers ...Server) *Manager {
	return &Manager{servers: servers}
}

// Start launches all servers and waits for termination. The first failure
// cancels the rest.
func (m *Manager) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, s := range m.servers {
		srv := s
		g.Go(func() error {
			return srv.Start(ctx)
		})
	}

	log.Info("All servers starting...")
	return g.Wait()
}
