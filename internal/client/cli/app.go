package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/selleradmin/internal/client/config"
	"github.com/dmitrijs2005/selleradmin/internal/rpc"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

// API is the part of rpc.Client the CLI drives.
type API interface {
	SignUp(ctx context.Context, req *rpc.SignUpRequest) (models.Account, error)
	SignIn(ctx context.Context, loginID, password string) (*rpc.SignInResponse, error)
	SetAccessToken(token string)
	RotatePassword(ctx context.Context, req *rpc.RotatePasswordRequest) error
	GetProfile(ctx context.Context, accountNo int64) (models.SellerProfile, error)
	UpdateProfile(ctx context.Context, accountNo int64, fields models.ProfileFields) (int64, error)
	ProfileHistory(ctx context.Context, accountNo int64) ([]models.SellerProfile, error)
	ProfileImageUploadURL(ctx context.Context, accountNo int64) (*rpc.ImageUploadURLResponse, error)
	ProfileImageURL(ctx context.Context, accountNo int64) (string, error)
	ListSellers(ctx context.Context, filter models.ListFilter) (models.SellerPage, error)
	SearchSellers(ctx context.Context, keyword string) ([]models.SellerSummary, error)
	ChangeSellerStatus(ctx context.Context, accountNo int64, status string) error
	GetSellerStatus(ctx context.Context, accountNo int64) (models.SellerStatus, error)
	Close() error
}

// session is the signed-in caller.
type session struct {
	loginID   string
	accountNo int64
	role      models.Role
}

type App struct {
	config  *config.Config
	api     API
	reader  *bufio.Reader
	out     io.Writer
	session *session
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := rpc.Dial(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api API, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: api, reader: bufio.NewReader(in), out: out}
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// withTimeout bounds one backend call by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
