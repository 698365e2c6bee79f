package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/rpc"
	"github.com/dmitrijs2005/selleradmin/internal/server/auth"
	"github.com/dmitrijs2005/selleradmin/internal/server/authz"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "panic in handler", "method", info.FullMethod, "panic", p)
			resp, err = nil, toStatus(common.ErrorInternal)
		}
	}()
	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	requestID := uuid.NewString()

	resp, err := handler(ctx, req)

	args := []any{
		"request_id", requestID,
		"method", info.FullMethod,
		"duration", time.Since(start),
		"code", status.Code(err).String(),
	}
	if err != nil {
		s.logger.Warn(ctx, "request failed", append(args, "error", err.Error())...)
	} else {
		s.logger.Debug(ctx, "request served", args...)
	}
	return resp, err
}

func accessTokenFrom(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// accessTokenInterceptor resolves the caller identity of every non-public
// method and stores it in the context for the handlers.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if rpc.IsPublic(info.FullMethod) {
		return handler(ctx, req)
	}

	accessToken := accessTokenFrom(ctx)
	if len(accessToken) == 0 {
		return nil, toStatus(common.ErrorUnauthorized)
	}

	id, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, toStatus(err)
	}

	ctx = authz.WithIdentity(ctx, id)

	return handler(ctx, req)
}
