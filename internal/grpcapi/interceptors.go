package grpcapi

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/service/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AuthorizationMetadataKey carries "Bearer <access token>".
const AuthorizationMetadataKey = "authorization"

// healthServicePrefix matches every method of the standard health service.
const healthServicePrefix = "/grpc.health.v1.Health/"

// LoggingInterceptor attaches a trace ID and a request scoped logger to the
// context and logs each call's outcome.
func LoggingInterceptor(base *slog.Logger) grpc.UnaryServerInterceptor {
	if base == nil {
		base = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		// Same trace_id field the HTTP trace middleware uses
		ctx = shared.SetTraceID(ctx)
		log := base.With(
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("grpc_method", info.FullMethod),
		)
		ctx = logger.WithLogger(ctx, log)

		// Call the handler and record the status code and duration
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Debug("grpc call finished",
			slog.String("code", status.Code(err).String()),
			slog.Duration("duration", time.Since(start)))
		return resp, err
	}
}

// AuthInterceptor validates the access token in the authorization metadata
// and stores the caller in the context. Health checks are not authenticated.
func AuthInterceptor(jwtService auth.JWTService) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		// Load balancers check health without credentials
		if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
			return handler(ctx, req)
		}

		token, ok := bearerFromMetadata(ctx)
		if !ok {
			return nil, toStatus(auth.ErrMissingToken)
		}

		claims, err := jwtService.ValidateToken(ctx, token)
		if err != nil {
			logger.FromContextOrDefault(ctx, slog.Default()).Debug("grpc token rejected", "error", err)
			return nil, toStatus(err)
		}
		// Claims must carry one of the known roles
		if !claims.Role.Valid() {
			return nil, toStatus(auth.ErrInvalidToken)
		}

		return handler(shared.WithPrincipal(ctx, claims.UserID, claims.Role), req)
	}
}

// bearerFromMetadata extracts the token from "authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func bearerFromMetadata(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	values := md.Get(AuthorizationMetadataKey)
	if len(values) == 0 {
		return "", false
	}
	parts := strings.SplitN(values[0], " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
