package swarm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/stretchr/testify/suite"
)

const testAPIVersion = "1.41"

// fakeEngine emulates the subset of the Docker Engine API used by Service.
type fakeEngine struct {
	mu        sync.Mutex
	logsQuery map[string]string
	// blockAfterFirstFrame keeps the logs response open until the client goes away.
	blockAfterFirstFrame atomic.Bool
	clientGone           chan struct{}
}

func (f *fakeEngine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v"+testAPIVersion)
	switch {
	case path == "/_ping":
		w.Header().Set("API-Version", testAPIVersion)
		_, _ = w.Write([]byte("OK"))
	case path == "/services/web":
		writeJSON(w, http.StatusOK, map[string]any{
			"ID": "svc-web",
			"Spec": map[string]any{
				"Name":         "web",
				"TaskTemplate": map[string]any{"ContainerSpec": map[string]any{"Image": "nginx"}},
			},
		})
	case path == "/services/console":
		writeJSON(w, http.StatusOK, map[string]any{
			"ID": "svc-console",
			"Spec": map[string]any{
				"Name":         "console",
				"TaskTemplate": map[string]any{"ContainerSpec": map[string]any{"Image": "busybox", "TTY": true}},
			},
		})
	case path == "/services/broken":
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "swarm is not healthy"})
	case path == "/services/svc-web/logs":
		f.recordQuery(r)
		w.Header().Set("Content-Type", "application/vnd.docker.multiplexed-stream")
		w.WriteHeader(http.StatusOK)
		stdout := stdcopy.NewStdWriter(w, stdcopy.Stdout)
		stderr := stdcopy.NewStdWriter(w, stdcopy.Stderr)
		_, _ = stdout.Write([]byte("line 1\n"))
		if f.blockAfterFirstFrame.Load() {
			w.(http.Flusher).Flush()
			<-r.Context().Done()
			close(f.clientGone)
			return
		}
		_, _ = stderr.Write([]byte("oops\n"))
		_, _ = stdout.Write([]byte("line 2\n"))
	case path == "/services/svc-console/logs":
		f.recordQuery(r)
		_, _ = w.Write([]byte("raw tty output\r\n"))
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "service " + strings.TrimPrefix(path, "/services/") + " not found"})
	}
}

func (f *fakeEngine) recordQuery(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logsQuery = map[string]string{}
	for key := range r.URL.Query() {
		f.logsQuery[key] = r.URL.Query().Get(key)
	}
}

func (f *fakeEngine) query(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logsQuery[key]
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ServiceSuite exercises Service against a fake engine.
type ServiceSuite struct {
	suite.Suite
	engine *fakeEngine
	server *httptest.Server
	svc    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.engine = &fakeEngine{clientGone: make(chan struct{})}
	s.server = httptest.NewServer(s.engine)

	svc, err := NewService(testAPIVersion, client.WithHost("tcp://"+strings.TrimPrefix(s.server.URL, "http://")))
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ServiceSuite) TearDownTest() {
	s.Require().NoError(s.svc.Close())
	s.server.Close()
}

func (s *ServiceSuite) TestFindService() {
	handle, err := s.svc.FindService(context.Background(), "web")
	s.Require().NoError(err)
	s.Equal("svc-web", handle.ID)
	s.Equal("web", handle.Name)
	s.False(handle.TTY)
}

func (s *ServiceSuite) TestFindServiceTTY() {
	handle, err := s.svc.FindService(context.Background(), "console")
	s.Require().NoError(err)
	s.True(handle.TTY)
}

func (s *ServiceSuite) TestFindServiceNotFound() {
	_, err := s.svc.FindService(context.Background(), "missing")
	s.Require().Error(err)
	s.True(errors.Is(err, ErrServiceNotFound), "expected ErrServiceNotFound, got %v", err)
}

func (s *ServiceSuite) TestFindServiceEngineFailure() {
	_, err := s.svc.FindService(context.Background(), "broken")
	s.Require().Error(err)
	s.False(errors.Is(err, ErrServiceNotFound))
	s.Contains(err.Error(), "swarm is not healthy")
}

func (s *ServiceSuite) TestServiceLogsDemultiplexes() {
	ctx := context.Background()
	handle, err := s.svc.FindService(ctx, "web")
	s.Require().NoError(err)

	stream, err := s.svc.ServiceLogs(ctx, handle, LogsOptions{Stdout: true, Stderr: true, Tail: "50"})
	s.Require().NoError(err)
	defer stream.Close()

	var buf bytes.Buffer
	n, err := stream.WriteTo(&buf)
	s.Require().NoError(err)
	s.Equal("line 1\noops\nline 2\n", buf.String())
	s.EqualValues(buf.Len(), n)

	s.Equal("50", s.engine.query("tail"))
	s.Equal("1", s.engine.query("stdout"))
	s.Equal("1", s.engine.query("stderr"))
}

func (s *ServiceSuite) TestServiceLogsTTYIsRaw() {
	ctx := context.Background()
	handle, err := s.svc.FindService(ctx, "console")
	s.Require().NoError(err)

	stream, err := s.svc.ServiceLogs(ctx, handle, LogsOptions{Stdout: true, Stderr: true, Tail: TailAll})
	s.Require().NoError(err)
	defer stream.Close()

	var buf bytes.Buffer
	_, err = stream.WriteTo(&buf)
	s.Require().NoError(err)
	s.Equal("raw tty output\r\n", buf.String())
	s.Equal(TailAll, s.engine.query("tail"))
}

// cancelOnWrite cancels the stream context as soon as the first chunk arrives.
type cancelOnWrite struct {
	bytes.Buffer
	cancel context.CancelFunc
}

func (c *cancelOnWrite) Write(p []byte) (int, error) {
	defer c.cancel()
	return c.Buffer.Write(p)
}

func (s *ServiceSuite) TestServiceLogsStopsOnCancel() {
	s.engine.blockAfterFirstFrame.Store(true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle, err := s.svc.FindService(ctx, "web")
	s.Require().NoError(err)
	stream, err := s.svc.ServiceLogs(ctx, handle, LogsOptions{Stdout: true, Stderr: true, Tail: "200"})
	s.Require().NoError(err)
	defer stream.Close()

	dst := &cancelOnWrite{cancel: cancel}
	_, err = stream.WriteTo(dst)
	s.Error(err)
	s.Equal("line 1\n", dst.String())

	select {
	case <-s.engine.clientGone:
	case <-time.After(5 * time.Second):
		s.Fail("engine connection was not released after cancellation")
	}
}

func (s *ServiceSuite) TestPing() {
	s.NoError(s.svc.Ping(context.Background()))
}
