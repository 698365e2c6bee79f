package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/rpc"
	"github.com/dmitrijs2005/selleradmin/internal/server/auth"
	"github.com/dmitrijs2005/selleradmin/internal/server/authz"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const testSecret = "super-secret"

func newTestServer() *GRPCServer {
	return NewGRPCServer("", nopLogger{}, Services{}, testSecret)
}

func withToken(t *testing.T, id authz.Identity, ttl time.Duration) context.Context {
	t.Helper()
	token, err := auth.GenerateToken(id, []byte(testSecret), ttl)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethodsSkipToken(t *testing.T) {
	s := newTestServer()

	for _, m := range []string{rpc.MethodSignUp, rpc.MethodSignIn} {
		info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(m)}
		called := false
		h := func(ctx context.Context, req any) (any, error) {
			called = true
			return "ok", nil
		}

		resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", m, err)
		}
		if !called || resp != "ok" {
			t.Fatalf("%s: handler not called", m)
		}
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(rpc.MethodGetProfile)}

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_InvalidAndExpiredToken(t *testing.T) {
	s := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(rpc.MethodGetProfile)}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called")
		return nil, nil
	}

	bad := metadata.NewIncomingContext(context.Background(),
		metadata.New(map[string]string{common.AccessTokenHeaderName: "not-a-valid-jwt"}))
	expired := withToken(t, authz.Identity{AccountNo: 7, Role: models.RoleSeller}, -time.Minute)

	for name, ctx := range map[string]context.Context{"invalid": bad, "expired": expired} {
		_, err := s.accessTokenInterceptor(ctx, nil, info, h)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("%s: expected Unauthenticated, got %v", name, status.Code(err))
		}
	}
}

func TestInterceptor_ValidToken_SetsIdentity(t *testing.T) {
	s := newTestServer()
	want := authz.Identity{AccountNo: 7, Role: models.RoleSeller}
	ctx := withToken(t, want, time.Hour)
	info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(rpc.MethodGetProfile)}

	var got authz.Identity
	h := func(ctx context.Context, req any) (any, error) {
		got, _ = authz.IdentityFrom(ctx)
		return "ok", nil
	}

	if _, err := s.accessTokenInterceptor(ctx, nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("identity not propagated: got %+v want %+v", got, want)
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	s := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(rpc.MethodGetProfile)}

	h := func(ctx context.Context, req any) (any, error) {
		panic("boom")
	}

	resp, err := s.recoveryInterceptor(context.Background(), nil, info, h)
	if resp != nil {
		t.Fatalf("expected nil resp, got %v", resp)
	}
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", status.Code(err))
	}
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(rpc.MethodGetProfile)}

	wantErr := toStatus(common.ErrorNotFound)
	_, err := s.loggingInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, wantErr
	})
	if err != wantErr {
		t.Fatalf("expected handler error unchanged, got %v", err)
	}
}
