package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/logging"
	"github.com/dmitrijs2005/selleradmin/internal/server/authz"
	"github.com/dmitrijs2005/selleradmin/internal/server/hasher"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Password length bounds in bytes; bcrypt ignores anything past 72.
const (
	MinPasswordLen = 8
	MaxPasswordLen = 72
)

type RotateRequest struct {
	OldPassword string
	NewPassword string
}

func (r RotateRequest) validate(role models.Role) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.When(role == models.RoleSeller, validation.Required)),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(MinPasswordLen, MaxPasswordLen)),
	)
}

// PasswordService rotates account credentials.
type PasswordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      hasher.Hasher
	log         logging.Logger
}

func NewPasswordService(db *sql.DB, m repomanager.RepositoryManager, h hasher.Hasher, log logging.Logger) *PasswordService {
	return &PasswordService{db: db, repomanager: m, hasher: h, log: log.With("service", "password")}
}

// Rotate replaces the target's credential. A master resets without the old
// password; a seller must prove the old one. The stored hash is left as it
// was on every failure.
func (s *PasswordService) Rotate(ctx context.Context, ac authz.Context, req RotateRequest) (err error) {
	defer recoverInternal(ctx, s.log, "rotate", &err)

	if err := authz.Decide(ac, authz.PasswordChange).Err(); err != nil {
		return err
	}
	if ac.Target <= 0 {
		return common.ErrMalformedRequest
	}
	if err := malformedIf(req.validate(ac.Role)); err != nil {
		return err
	}

	repo := s.repomanager.Accounts(s.db)

	if ac.Role == models.RoleMaster {
		newHash, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			s.log.Error(ctx, "hash failed", "error", err)
			return common.ErrorInternal
		}
		if err := repo.SetCredentialHash(ctx, ac.Target, newHash); err != nil {
			return common.StoreFailure(err)
		}
		s.log.Info(ctx, "password reset", "caller", ac.Caller, "account_no", ac.Target)
		return nil
	}

	stored, err := repo.GetCredentialHash(ctx, ac.Target)
	if err != nil {
		return common.StoreFailure(err)
	}

	ok, err := s.hasher.Verify(req.OldPassword, stored)
	if err != nil {
		s.log.Error(ctx, "stored credential unreadable", "account_no", ac.Target, "error", err)
		return common.ErrorInternal
	}
	if !ok {
		s.log.Info(ctx, "password rotation rejected", "account_no", ac.Target)
		return common.ErrInvalidPassword
	}

	newHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		s.log.Error(ctx, "hash failed", "error", err)
		return common.ErrorInternal
	}

	if err := repo.CompareAndSetCredentialHash(ctx, ac.Target, stored, newHash); err != nil {
		return common.StoreFailure(err)
	}

	s.log.Info(ctx, "password rotated", "account_no", ac.Target)
	return nil
}
