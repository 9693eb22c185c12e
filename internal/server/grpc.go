package server

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	myGRPC "github.com/MKhiriev/go-tyre-shop/internal/handler/grpc"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	// stopProbe ends the health probe loop started by RunServer.
	stopProbe context.CancelFunc

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("gRPC listen on %s: %w", cfg.GRPCAddress, err)
	}

	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		handler:         handler,
		server:          server,
		gRPCNetListener: listener,
		stopProbe:       func() {},
		logger:          logger,
	}, nil
}

func (g *grpcServer) RunServer() {
	ctx, cancel := context.WithCancel(context.Background())
	g.stopProbe = cancel
	go g.handler.Watch(ctx, myGRPC.DefaultProbeInterval)

	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("gRPC server listening")
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.stopProbe()
	g.server.GracefulStop()
}
