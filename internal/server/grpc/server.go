// Package grpc runs the standard grpc.health.v1 service of the server. Its
// status follows a periodic ping of the database.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/pdstore/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "pdstore"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StoreObserver receives the result of every database check.
type StoreObserver interface {
	SetStoreUp(up bool)
}

type HealthServer struct {
	address  string
	db       Pinger
	interval time.Duration
	observer StoreObserver
	logger   logging.Logger
	health   *health.Server
}

func NewHealthServer(a string, l logging.Logger, db Pinger, interval time.Duration, observer StoreObserver) *HealthServer {
	return &HealthServer{
		address:  a,
		logger:   l.With("module", "grpc_health"),
		db:       db,
		interval: interval,
		observer: observer,
		health:   health.NewServer(),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {
	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	// registers service
	healthpb.RegisterHealthServer(srv, s.health)

	s.check(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC health server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

func (s *HealthServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

// check pings the database once and publishes the result.
func (s *HealthServer) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn(ctx, "database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	if s.observer != nil {
		s.observer.SetStoreUp(status == healthpb.HealthCheckResponse_SERVING)
	}
}
