// internal/swarm/service.go
package swarm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	swarmtypes "github.com/docker/docker/api/types/swarm"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// TailAll asks the engine for the complete log instead of the last N lines.
const TailAll = "all"

// ErrServiceNotFound is returned (wrapped) by FindService when the engine has no such service.
var ErrServiceNotFound = errors.New("service not found")

// Service provides access to Swarm services through the Docker Engine API.
// A single Service is shared by all requests; the underlying client is safe for concurrent use.
type Service struct {
	cli *client.Client
}

// ServiceHandle identifies a resolved Swarm service for the duration of one request.
type ServiceHandle struct {
	ID   string
	Name string
	// TTY services produce a raw stream instead of stdout/stderr frames.
	TTY bool
}

// LogsOptions selects which streams to read and how much history to return.
type LogsOptions struct {
	Stdout bool
	Stderr bool
	// Tail is either TailAll or a decimal line count.
	Tail string
}

// NewService creates a Docker client configured from the DOCKER_* environment variables.
// apiVersion pins the Engine API version; an empty value negotiates it with the daemon.
// Extra client options are applied last.
func NewService(apiVersion string, opts ...client.Opt) (*Service, error) {
	clientOpts := []client.Opt{client.FromEnv}
	if apiVersion != "" {
		clientOpts = append(clientOpts, client.WithVersion(apiVersion))
	} else {
		clientOpts = append(clientOpts, client.WithAPIVersionNegotiation())
	}
	clientOpts = append(clientOpts, opts...)

	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	log.Debug("Docker client created", "host", cli.DaemonHost(), "api_version", cli.ClientVersion())
	return &Service{cli: cli}, nil
}

// FindService resolves name (or ID) to a service handle.
func (s *Service) FindService(ctx context.Context, name string) (*ServiceHandle, error) {
	svc, _, err := s.cli.ServiceInspectWithRaw(ctx, name, swarmtypes.ServiceInspectOptions{})
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return nil, fmt.Errorf("service '%s': %w", name, ErrServiceNotFound)
		}
		return nil, fmt.Errorf("inspecting service '%s': %w", name, err)
	}

	handle := &ServiceHandle{
		ID:   svc.ID,
		Name: svc.Spec.Name,
	}
	if spec := svc.Spec.TaskTemplate.ContainerSpec; spec != nil {
		handle.TTY = spec.TTY
	}
	log.Debug("Resolved service", "name", name, "id", handle.ID, "tty", handle.TTY)
	return handle, nil
}

// ServiceLogs opens the log stream of a service. The stream is bound to ctx:
// cancelling ctx aborts any pending read. Callers must Close the returned stream.
func (s *Service) ServiceLogs(ctx context.Context, handle *ServiceHandle, opts LogsOptions) (*LogStream, error) {
	rc, err := s.cli.ServiceLogs(ctx, handle.ID, container.LogsOptions{
		ShowStdout: opts.Stdout,
		ShowStderr: opts.Stderr,
		Tail:       opts.Tail,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting logs for service '%s': %w", handle.Name, err)
	}
	return NewLogStream(rc, handle.TTY), nil
}

// Ping checks that the daemon is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if _, err := s.cli.Ping(ctx); err != nil {
		return fmt.Errorf("pinging docker daemon: %w", err)
	}
	return nil
}

// Close releases the client's idle connections.
func (s *Service) Close() error {
	return s.cli.Close()
}

// LogStream is a forward-only service log. Bytes are delivered in the order the engine sends them.
type LogStream struct {
	rc  io.ReadCloser
	tty bool
}

// NewLogStream wraps an engine response body. tty selects raw copying over frame demultiplexing.
func NewLogStream(rc io.ReadCloser, tty bool) *LogStream {
	return &LogStream{rc: rc, tty: tty}
}

// WriteTo copies the log payload to w until EOF. Multiplexed stdout/stderr frames
// are unwrapped and written to w in arrival order.
func (l *LogStream) WriteTo(w io.Writer) (int64, error) {
	if l.tty {
		return io.Copy(w, l.rc)
	}
	return stdcopy.StdCopy(w, w, l.rc)
}

// Close releases the connection to the engine.
func (l *LogStream) Close() error {
	return l.rc.Close()
}
