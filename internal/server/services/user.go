package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/dbx"
	"github.com/dmitrijs2005/selleradmin/internal/logging"
	"github.com/dmitrijs2005/selleradmin/internal/server/auth"
	"github.com/dmitrijs2005/selleradmin/internal/server/authz"
	"github.com/dmitrijs2005/selleradmin/internal/server/config"
	"github.com/dmitrijs2005/selleradmin/internal/server/hasher"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var loginIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// SignUpRequest registers a new seller together with its first profile.
type SignUpRequest struct {
	LoginID  string
	Password string
	Profile  models.ProfileFields
}

func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LoginID, validation.Required, validation.Length(4, 50), validation.Match(loginIDPattern)),
		validation.Field(&r.Password, validation.Required, validation.Length(MinPasswordLen, MaxPasswordLen)),
		validation.Field(&r.Profile),
	)
}

// SignInResult is an access token and the account it was issued for.
type SignInResult struct {
	AccessToken string
	Account     *models.Account
}

// AccountService handles seller registration, sign-in and the master
// account bootstrap.
type AccountService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      hasher.Hasher
	log                         logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, h hasher.Hasher, cfg *config.Config, log logging.Logger) *AccountService {
	return &AccountService{
		db:                          db,
		repomanager:                 m,
		hasher:                      h,
		log:                         log.With("service", "account"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// SignUp creates a pending seller and its first profile revision in one
// transaction.
func (s *AccountService) SignUp(ctx context.Context, req SignUpRequest) (account *models.Account, err error) {
	defer recoverInternal(ctx, s.log, "sign_up", &err)

	if err := malformedIf(req.Validate()); err != nil {
		return nil, err
	}
	if req.Profile.ProfileImageKey != "" {
		// no account number yet, so no key can belong to it
		return nil, common.ErrInvalidReference
	}

	if err := checkAppUser(ctx, s.repomanager.Profiles(s.db), req.Profile.AppUserID); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error(ctx, "hash failed", "error", err)
		return nil, common.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		a, err := s.repomanager.Accounts(tx).Create(ctx, &models.Account{
			LoginID:      req.LoginID,
			PasswordHash: hash,
			Role:         models.RoleSeller,
			Status:       models.StatusPending,
		})
		if err != nil {
			return err
		}
		if _, err := s.repomanager.Profiles(tx).AppendVersion(ctx, a.AccountNo, req.Profile, a.AccountNo); err != nil {
			return err
		}
		account = a
		return nil
	})
	if err != nil {
		return nil, common.StoreFailure(err)
	}

	s.log.Info(ctx, "seller signed up", "account_no", account.AccountNo, "login_id", account.LoginID)
	return account, nil
}

// SignIn verifies the credential and issues an access token. An unknown
// login and a wrong password are indistinguishable to the caller.
func (s *AccountService) SignIn(ctx context.Context, loginID, password string) (res *SignInResult, err error) {
	defer recoverInternal(ctx, s.log, "sign_in", &err)

	if loginID == "" || password == "" {
		return nil, common.ErrMalformedRequest
	}

	account, err := s.repomanager.Accounts(s.db).GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidPassword
		}
		return nil, common.StoreFailure(err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "stored credential unreadable", "account_no", account.AccountNo, "error", err)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrInvalidPassword
	}

	token, err := auth.GenerateToken(authz.Identity{AccountNo: account.AccountNo, Role: account.Role}, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &SignInResult{AccessToken: token, Account: account}, nil
}

// EnsureMaster creates the master account when it does not exist yet.
// An empty loginID disables the bootstrap.
func (s *AccountService) EnsureMaster(ctx context.Context, loginID, password string) (*models.Account, error) {
	if loginID == "" {
		return nil, nil
	}

	repo := s.repomanager.Accounts(s.db)

	existing, err := repo.GetByLoginID(ctx, loginID)
	switch {
	case err == nil:
		if existing.Role != models.RoleMaster {
			return nil, fmt.Errorf("login %q belongs to a %s account", loginID, existing.Role)
		}
		return existing, nil
	case !errors.Is(err, common.ErrorNotFound):
		return nil, common.StoreFailure(err)
	}

	if err := malformedIf(validation.Validate(password, validation.Required, validation.Length(MinPasswordLen, MaxPasswordLen))); err != nil {
		return nil, fmt.Errorf("master password: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	master, err := repo.Create(ctx, &models.Account{
		LoginID:      loginID,
		PasswordHash: hash,
		Role:         models.RoleMaster,
		Status:       models.StatusActive,
	})
	if err != nil {
		return nil, common.StoreFailure(err)
	}

	s.log.Info(ctx, "master account created", "account_no", master.AccountNo, "login_id", loginID)
	return master, nil
}
