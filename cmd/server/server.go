package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/phrazzld/crud-suite/internal/grpcapi"
)

// serve starts the HTTP and gRPC servers and blocks until ctx is cancelled
// or either server fails. Both servers are stopped before it returns.
func (app *application) serve(ctx context.Context, router http.Handler) error {
	// Configure the HTTP server
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Bind the gRPC port before starting anything so a taken port fails fast
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}
	grpcServer, healthServer := grpcapi.NewServer(app.notifications, app.jwtService, app.logger)

	// Buffered so a failing server never blocks after serve has returned
	serverErrs := make(chan error, 2)

	// Start the servers in goroutines so they don't block

	go func() {
		app.logger.Info("Starting HTTP server", "port", app.config.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrs <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		app.logger.Info("Starting gRPC server", "port", app.config.Server.GRPCPort)
		if err := grpcServer.Serve(grpcListener); err != nil {
			serverErrs <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	// Wait for a shutdown signal or the first server failure
	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info("Shutting down servers...")
	case runErr = <-serverErrs:
		app.logger.Error("Server failed", "error", runErr)
	}

	// Both servers share one shutdown deadline
	timeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Report NOT_SERVING to health checkers before draining connections
	healthServer.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("HTTP server shutdown failed", "error", err)
		if runErr == nil {
			runErr = fmt.Errorf("server shutdown failed: %w", err)
		}
	}

	// GracefulStop waits for open streams; fall back to Stop at the deadline
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		app.logger.Warn("gRPC graceful stop timed out, forcing stop")
		grpcServer.Stop()
	}

	app.logger.Info("Server shutdown completed")
	return runErr
}
