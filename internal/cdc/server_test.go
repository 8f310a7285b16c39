package cdc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	v1 "github.com/litetable/litetable-cdc/go/v1"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

type fakeStream struct {
	grpc.ServerStream
	ctx     context.Context
	mu      sync.Mutex
	sent    []*v1.CDCEvent
	sendErr error
}

func (f *fakeStream) Send(e *v1.CDCEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, e)
	return nil
}

func (f *fakeStream) Context() context.Context {
	return f.ctx
}

func (f *fakeStream) events() []*v1.CDCEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*v1.CDCEvent(nil), f.sent...)
}

func (s *Server) subscribers() int {
	s.grpcMux.Lock()
	defer s.grpcMux.Unlock()
	return len(s.grpcStreams)
}

func subscribe(t *testing.T, s *Server, id string, replay bool) (*fakeStream, context.CancelFunc,
	chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	stream := &fakeStream{ctx: ctx}
	done := make(chan error, 1)
	go func() {
		done <- s.CDCStream(&v1.CDCSubscriptionRequest{ClientId: id, Replay: replay}, stream)
	}()
	return stream, cancel, done
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg     *Config
		wantErr bool
	}{
		"defaults": {
			cfg: &Config{},
		},
		"invalid port": {
			cfg:     &Config{Port: 70000},
			wantErr: true,
		},
		"negative buffer": {
			cfg:     &Config{BufferSize: -1},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := New(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "127.0.0.1:32473", s.Addr())
		})
	}
}

func TestEvent_toProto(t *testing.T) {
	created := (&Event{Kind: FamilyCreated, Table: "user", Family: "D", LogicalFamily: "prefs",
		Timestamp: 42}).toProto()
	require.Equal(t, "user", created.RowKey)
	require.Equal(t, "D", created.Family)
	require.Equal(t, "prefs", created.Qualifier)
	require.Equal(t, int64(42), created.TimestampUnix)
	require.Equal(t, v1.LitetableOperation_WRITE, created.Operation)
	require.False(t, created.Tombstone)

	deleted := (&Event{Kind: TableDeleted, Table: "user"}).toProto()
	require.Equal(t, v1.LitetableOperation_DELETE, deleted.Operation)
	require.True(t, deleted.Tombstone)
}

func TestServer_CDCStream(t *testing.T) {
	req := require.New(t)
	s, err := New(&Config{})
	req.NoError(err)

	stream, cancel, done := subscribe(t, s, "client-1", false)
	req.Eventually(func() bool { return s.subscribers() == 1 }, time.Second, 5*time.Millisecond)

	s.dispatch((&Event{Kind: TableCreated, Table: "user"}).toProto())
	req.Len(stream.events(), 1)
	req.Equal("user", stream.events()[0].RowKey)

	cancel()
	req.NoError(<-done)
	req.Equal(0, s.subscribers())
}

func TestServer_CDCStream_replay(t *testing.T) {
	req := require.New(t)
	s, err := New(&Config{ReplaySize: 2})
	req.NoError(err)

	for _, table := range []string{"a", "b", "c"} {
		s.dispatch((&Event{Kind: TableCreated, Table: table}).toProto())
	}

	stream, cancel, done := subscribe(t, s, "client-1", true)
	defer cancel()
	req.Eventually(func() bool { return s.subscribers() == 1 }, time.Second, 5*time.Millisecond)

	events := stream.events()
	req.Len(events, 2, "only the most recent events are replayed")
	req.Equal("b", events[0].RowKey)
	req.Equal("c", events[1].RowKey)

	req.NoError(s.Stop())
	req.NoError(<-done, "stopping the server ends subscriptions")
}

func TestServer_dispatch_sendError(t *testing.T) {
	s, err := New(&Config{})
	require.NoError(t, err)

	broken := &fakeStream{ctx: context.Background(), sendErr: errors.New("broken pipe")}
	s.grpcStreams["broken"] = broken

	s.dispatch((&Event{Kind: TableCreated, Table: "user"}).toProto())
	require.Equal(t, 0, s.subscribers())
}

func TestServer_CDCStream_missingClient(t *testing.T) {
	s, err := New(&Config{})
	require.NoError(t, err)

	err = s.CDCStream(&v1.CDCSubscriptionRequest{}, &fakeStream{ctx: context.Background()})
	require.Error(t, err)
}

func TestServer_Emit(t *testing.T) {
	s, err := New(&Config{BufferSize: 1})
	require.NoError(t, err)

	s.Emit(&Event{Kind: TableCreated, Table: "a"})
	s.Emit(&Event{Kind: TableCreated, Table: "b"})
	require.Len(t, s.events, 1, "events beyond the buffer are dropped")

	require.NoError(t, s.Stop())
	<-s.events
	s.Emit(&Event{Kind: TableCreated, Table: "c"})
	require.Len(t, s.events, 0, "stopped servers drop events")
}

func TestServer_StartStop(t *testing.T) {
	s, err := New(&Config{})
	require.NoError(t, err)
	// ephemeral port
	s.port = 0

	require.NoError(t, s.Start())
	require.NotEqual(t, "127.0.0.1:0", s.Addr())

	s.Emit(&Event{Kind: TableCreated, Table: "user"})
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop(), "stop is idempotent")
}
