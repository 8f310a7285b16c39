// Package grpc serves a store over gRPC so migrations and readers can run against it from
// other processes.
package grpc

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

//go:generate mockgen -destination=grpc_mock.go -package=grpc -source=grpc.go

type grpcServer interface {
	Serve(lis net.Listener) error
	GracefulStop()
}

// Server implements the app.Dependency interface for a gRPC server
type Server struct {
	address  string
	server   grpcServer
	port     int
	listener net.Listener
}

type Config struct {
	Address string
	// Port 0 picks a free port.
	Port  int
	Store store
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("address required"))
	}
	if c.Port < 0 {
		errGrp = append(errGrp, fmt.Errorf("port cannot be negative"))
	}
	if c.Store == nil {
		errGrp = append(errGrp, fmt.Errorf("store required"))
	}

	return errors.Join(errGrp...)
}

// NewServer creates a new gRPC server instance
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	srv := grpc2.NewServer()
	srv.RegisterService(&serviceDesc, &service{store: cfg.Store})
	reflection.Register(srv)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Address, cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to create listener on port %d: %w", cfg.Port, err)
	}

	return &Server{
		address:  cfg.Address,
		server:   srv,
		port:     lis.Addr().(*net.TCPAddr).Port,
		listener: lis,
	}, nil
}

func (s *Server) Start() error {
	log.Info().Msgf("gRPC store server listening at %s", s.Addr())

	errCh := make(chan error, 1)

	go func() {
		if err := s.server.Serve(s.listener); err != nil {
			errCh <- err
			log.Error().Err(err).Msg("gRPC server failed")
			return
		}
		errCh <- nil
	}()

	// Block briefly for error or nil return
	select {
	case err := <-errCh:
		return err
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}

func (s *Server) Stop() error {
	log.Info().Msg("Stopping gRPC store server")
	s.server.GracefulStop()
	// GracefulStop only closes listeners handed to Serve.
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
	}
	return nil
}

func (s *Server) Name() string {
	return "gRPC Store Server"
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.address, fmt.Sprint(s.port))
}
