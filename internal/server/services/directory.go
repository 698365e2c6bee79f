package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/logging"
	"github.com/dmitrijs2005/selleradmin/internal/server/authz"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxKeywordLen = 50

// DirectoryService lists, searches and moderates sellers. All of it is
// master-only.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *DirectoryService {
	return &DirectoryService{db: db, repomanager: m, log: log.With("service", "directory")}
}

func (s *DirectoryService) List(ctx context.Context, caller authz.Identity, filter models.ListFilter) (page *models.SellerPage, err error) {
	defer recoverInternal(ctx, s.log, "list", &err)

	if err := authz.Decide(caller.On(0), authz.DirectoryList).Err(); err != nil {
		return nil, err
	}

	filter = filter.Normalize()
	if err := malformedIf(filter.Validate()); err != nil {
		return nil, err
	}

	page, err = s.repomanager.Sellers(s.db).List(ctx, filter)
	if err != nil {
		return nil, common.StoreFailure(err)
	}
	return page, nil
}

// SearchByName returns at most models.SearchResultLimit sellers whose
// current display name contains keyword.
func (s *DirectoryService) SearchByName(ctx context.Context, caller authz.Identity, keyword string) (out []models.SellerSummary, err error) {
	defer recoverInternal(ctx, s.log, "search", &err)

	if err := authz.Decide(caller.On(0), authz.DirectorySearch).Err(); err != nil {
		return nil, err
	}

	keyword = strings.TrimSpace(keyword)
	if err := malformedIf(validation.Validate(keyword, validation.Required, validation.RuneLength(1, maxKeywordLen))); err != nil {
		return nil, err
	}

	out, err = s.repomanager.Sellers(s.db).SearchByName(ctx, keyword, models.SearchResultLimit)
	if err != nil {
		return nil, common.StoreFailure(err)
	}
	return out, nil
}

// ChangeStatus moves a seller to status. Missing fields are malformed;
// a status outside the lifecycle is an invalid reference. Both are
// rejected before the store is touched.
func (s *DirectoryService) ChangeStatus(ctx context.Context, caller authz.Identity, target int64, status string) (err error) {
	defer recoverInternal(ctx, s.log, "change_status", &err)

	if err := authz.Decide(caller.On(target), authz.StatusChange).Err(); err != nil {
		return err
	}
	if target <= 0 || strings.TrimSpace(status) == "" {
		return common.ErrMalformedRequest
	}

	st, err := models.ParseSellerStatus(status)
	if err != nil {
		return common.ErrInvalidReference
	}

	if err := s.repomanager.Accounts(s.db).SetStatus(ctx, target, st); err != nil {
		return common.StoreFailure(err)
	}

	s.log.Info(ctx, "seller status changed", "caller", caller.AccountNo, "account_no", target, "status", st)
	return nil
}

// Status returns the target's seller status.
func (s *DirectoryService) Status(ctx context.Context, ac authz.Context) (st models.SellerStatus, err error) {
	defer recoverInternal(ctx, s.log, "status", &err)

	if err := authz.Decide(ac, authz.StatusRead).Err(); err != nil {
		return "", err
	}
	if ac.Target <= 0 {
		return "", common.ErrMalformedRequest
	}

	st, err = s.repomanager.Accounts(s.db).GetStatus(ctx, ac.Target)
	if err != nil {
		return "", common.StoreFailure(err)
	}
	return st, nil
}
