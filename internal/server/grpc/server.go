// Package grpc exposes the seller admin services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/selleradmin/internal/logging"
	"github.com/dmitrijs2005/selleradmin/internal/rpc"
	"github.com/dmitrijs2005/selleradmin/internal/server/authz"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"github.com/dmitrijs2005/selleradmin/internal/server/services"
	"google.golang.org/grpc"
)

type AccountService interface {
	SignUp(ctx context.Context, req services.SignUpRequest) (*models.Account, error)
	SignIn(ctx context.Context, loginID, password string) (*services.SignInResult, error)
}

type PasswordService interface {
	Rotate(ctx context.Context, ac authz.Context, req services.RotateRequest) error
}

type ProfileService interface {
	Read(ctx context.Context, ac authz.Context) (*models.SellerProfile, error)
	Write(ctx context.Context, ac authz.Context, fields models.ProfileFields) (int64, error)
	History(ctx context.Context, ac authz.Context) ([]models.SellerProfile, error)
	ImageUploadURL(ctx context.Context, ac authz.Context) (string, string, error)
	ImageURL(ctx context.Context, ac authz.Context) (string, error)
}

type DirectoryService interface {
	List(ctx context.Context, caller authz.Identity, filter models.ListFilter) (*models.SellerPage, error)
	SearchByName(ctx context.Context, caller authz.Identity, keyword string) ([]models.SellerSummary, error)
	ChangeStatus(ctx context.Context, caller authz.Identity, target int64, status string) error
	Status(ctx context.Context, ac authz.Context) (models.SellerStatus, error)
}

// Services bundles the workflows the server dispatches to.
type Services struct {
	Accounts  AccountService
	Passwords PasswordService
	Profiles  ProfileService
	Directory DirectoryService
}

type GRPCServer struct {
	address   string
	svc       Services
	logger    logging.Logger
	jwtSecret []byte
}

var _ rpc.SellerAdminServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		svc:       svc,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds the grpc.Server with the interceptor chain and the
// service registered. Recovery runs outermost so a panic in any later
// interceptor is still converted.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.recoveryInterceptor,
		s.loggingInterceptor,
		s.accessTokenInterceptor,
	))
	rpc.RegisterSellerAdminServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
