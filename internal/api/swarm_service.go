// internal/api/swarm_service.go
package api

import (
	"context"
	"time"

	"github.com/girder/swarm-logs-server/internal/swarm"
)

// SwarmService is the runtime API the handlers depend on. *swarm.Service implements it.
type SwarmService interface {
	FindService(ctx context.Context, name string) (*swarm.ServiceHandle, error)
	ServiceLogs(ctx context.Context, handle *swarm.ServiceHandle, opts swarm.LogsOptions) (*swarm.LogStream, error)
	Ping(ctx context.Context) error
}

// Handlers carries the long-lived dependencies shared by all requests.
type Handlers struct {
	swarm SwarmService

	// streamTimeout bounds a single log stream; zero means no bound.
	streamTimeout time.Duration

	version   string
	startTime time.Time
}

// NewHandlers wires the runtime client into the HTTP handlers.
func NewHandlers(svc SwarmService, version string, streamTimeout time.Duration) *Handlers {
	return &Handlers{
		swarm:         svc,
		streamTimeout: streamTimeout,
		version:       version,
		startTime:     time.Now(),
	}
}
