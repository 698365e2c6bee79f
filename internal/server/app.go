// Package server wires configuration, storage and services together and
// runs the gRPC endpoint until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/dbx"
	"github.com/dmitrijs2005/selleradmin/internal/logging"
	"github.com/dmitrijs2005/selleradmin/internal/server/assets"
	"github.com/dmitrijs2005/selleradmin/internal/server/config"
	"github.com/dmitrijs2005/selleradmin/internal/server/hasher"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/selleradmin/internal/server/services"

	gs "github.com/dmitrijs2005/selleradmin/internal/server/grpc"
)

const startupTimeout = 30 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	services gs.Services
	accounts *services.AccountService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	dialect, err := dbx.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := repomanager.Open(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewRepositoryManager(dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	h := hasher.NewBcrypt(c.BcryptCost)
	as := services.NewAccountService(db, rm, h, c, logger)

	app := &App{
		config:   c,
		logger:   logger,
		db:       db,
		accounts: as,
		services: gs.Services{
			Accounts:  as,
			Passwords: services.NewPasswordService(db, rm, h, logger),
			Profiles:  services.NewProfileService(db, rm, assets.NewS3Presigner(c), logger),
			Directory: services.NewDirectoryService(db, rm, logger),
		},
	}

	if err := app.ensureMaster(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return app, nil
}

func (app *App) ensureMaster(ctx context.Context) error {
	master, err := app.accounts.EnsureMaster(ctx, app.config.MasterLoginID, app.config.MasterPassword)
	if err != nil {
		return fmt.Errorf("master account: %w", err)
	}
	if master != nil {
		app.logger.Info(ctx, "Master account ready", "login_id", master.LoginID, "account_no", master.AccountNo)
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
