// Package cdc streams layout change events to subscribers over the LiteTable CDC gRPC service.
//
// Events map onto the CDC wire type as follows: the row key carries the logical table name, the
// family the physical family name and the qualifier the logical family name. The value holds
// the JSON encoded layout for table level events.
package cdc

import (
	"errors"
	"fmt"
	"net"
	"sync"

	v1 "github.com/litetable/litetable-cdc/go/v1"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
)

const (
	defaultAddress    = "127.0.0.1"
	defaultPort       = 32473
	defaultBufferSize = 1000
	defaultReplaySize = 256
)

// Kind of a layout change.
type Kind int

const (
	TableCreated Kind = iota
	TableDeleted
	LayoutApplied
	FamilyCreated
	FamilyModified
)

func (k Kind) String() string {
	switch k {
	case TableCreated:
		return "table-created"
	case TableDeleted:
		return "table-deleted"
	case LayoutApplied:
		return "layout-applied"
	case FamilyCreated:
		return "family-created"
	case FamilyModified:
		return "family-modified"
	}
	return "unknown"
}

// Event is one layout change.
type Event struct {
	Kind          Kind
	Table         string
	LayoutID      uint64
	Family        string
	LogicalFamily string
	Layout        []byte
	Timestamp     int64
}

func (e *Event) toProto() *v1.CDCEvent {
	event := &v1.CDCEvent{
		RowKey:        e.Table,
		Family:        e.Family,
		Qualifier:     e.LogicalFamily,
		Value:         e.Layout,
		TimestampUnix: e.Timestamp,
		Operation:     v1.LitetableOperation_WRITE,
	}
	if e.Kind == TableDeleted {
		event.Operation = v1.LitetableOperation_DELETE
		event.Tombstone = true
	}
	return event
}

type Server struct {
	v1.UnimplementedCDCServiceServer
	address string
	port    int

	grpcStreams map[string]v1.CDCService_CDCStreamServer
	grpcMux     sync.Mutex

	// replay holds the most recent events, oldest first.
	replay     []*v1.CDCEvent
	replaySize int

	server   *grpc.Server
	listener net.Listener
	events   chan *Event
	done     chan struct{}
	stopOnce sync.Once
}

type Config struct {
	Address    string
	Port       int
	BufferSize int
	ReplaySize int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Port < 0 || c.Port > 65535 {
		errGrp = append(errGrp, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.BufferSize < 0 {
		errGrp = append(errGrp, errors.New("buffer size cannot be negative"))
	}
	if c.ReplaySize < 0 {
		errGrp = append(errGrp, errors.New("replay size cannot be negative"))
	}
	return errors.Join(errGrp...)
}

// New creates the CDC server. A zero port listens on the default CDC port.
func New(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Server{
		address:     cfg.Address,
		port:        cfg.Port,
		grpcStreams: make(map[string]v1.CDCService_CDCStreamServer),
		replaySize:  cfg.ReplaySize,
		done:        make(chan struct{}),
	}
	if s.address == "" {
		s.address = defaultAddress
	}
	if s.port == 0 {
		s.port = defaultPort
	}
	if s.replaySize == 0 {
		s.replaySize = defaultReplaySize
	}
	bufferSize := cfg.BufferSize
	if bufferSize == 0 {
		bufferSize = defaultBufferSize
	}
	s.events = make(chan *Event, bufferSize)

	srv := grpc.NewServer()
	v1.RegisterCDCServiceServer(srv, s)
	s.server = srv
	return s, nil
}

// Emit queues an event for every subscriber. Events are dropped when the buffer is full or the
// server is stopped.
func (s *Server) Emit(e *Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- e:
	default:
		log.Warn().Str("table", e.Table).Str("kind", e.Kind.String()).
			Msg("CDC buffer full, dropping layout event")
	}
}

// CDCStream registers a subscriber until its stream ends. With replay set, the most recent
// events are sent before live ones.
func (s *Server) CDCStream(req *v1.CDCSubscriptionRequest,
	stream v1.CDCService_CDCStreamServer) error {
	id := req.GetClientId()
	if id == "" {
		return errors.New("client id is required")
	}

	s.grpcMux.Lock()
	if req.GetReplay() {
		for _, event := range s.replay {
			if err := stream.Send(event); err != nil {
				s.grpcMux.Unlock()
				return err
			}
		}
	}
	s.grpcStreams[id] = stream
	s.grpcMux.Unlock()

	log.Debug().Str("client", id).Msg("CDC subscriber registered")

	select {
	case <-stream.Context().Done():
	case <-s.done:
	}

	s.grpcMux.Lock()
	delete(s.grpcStreams, id)
	s.grpcMux.Unlock()
	return nil
}

// Start listens and dispatches events until Stop.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	s.listener = lis

	log.Info().Msgf("CDC gRPC server listening at %s", lis.Addr())

	go s.dispatchLoop()
	go func() {
		if err := s.server.Serve(lis); err != nil {
			log.Error().Err(err).Msg("CDC gRPC server failed")
		}
	}()
	return nil
}

func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		s.server.GracefulStop()
	})
	return nil
}

func (s *Server) Name() string {
	return "CDC Stream"
}

// Addr is the listening address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return fmt.Sprintf("%s:%d", s.address, s.port)
	}
	return s.listener.Addr().String()
}

func (s *Server) dispatchLoop() {
	for {
		select {
		case <-s.done:
			return
		case evt := <-s.events:
			s.dispatch(evt.toProto())
		}
	}
}

func (s *Server) dispatch(event *v1.CDCEvent) {
	s.grpcMux.Lock()
	defer s.grpcMux.Unlock()

	s.replay = append(s.replay, event)
	if len(s.replay) > s.replaySize {
		s.replay = s.replay[len(s.replay)-s.replaySize:]
	}

	for id, stream := range s.grpcStreams {
		if err := stream.Send(event); err != nil {
			log.Warn().Err(err).Str("client", id).Msg("removing gRPC stream due to send error")
			delete(s.grpcStreams, id)
		}
	}
}
