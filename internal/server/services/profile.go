package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/logging"
	"github.com/dmitrijs2005/selleradmin/internal/server/assets"
	"github.com/dmitrijs2005/selleradmin/internal/server/authz"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/repomanager"
)

// ProfileService reads and revises seller profiles. Revisions are only
// ever appended; nothing here updates or deletes an existing one.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageStore
	log         logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, images ImageStore, log logging.Logger) *ProfileService {
	return &ProfileService{db: db, repomanager: m, images: images, log: log.With("service", "profile")}
}

func (s *ProfileService) allow(ac authz.Context, action authz.Action) error {
	if err := authz.Decide(ac, action).Err(); err != nil {
		return err
	}
	if ac.Target <= 0 {
		return common.ErrMalformedRequest
	}
	return nil
}

// Read returns the current revision of the target's profile.
func (s *ProfileService) Read(ctx context.Context, ac authz.Context) (p *models.SellerProfile, err error) {
	defer recoverInternal(ctx, s.log, "read", &err)

	if err := s.allow(ac, authz.ProfileRead); err != nil {
		return nil, err
	}

	p, err = s.repomanager.Profiles(s.db).GetCurrent(ctx, ac.Target)
	if err != nil {
		return nil, common.StoreFailure(err)
	}
	return p, nil
}

// Write appends fields as the next revision and returns its version.
func (s *ProfileService) Write(ctx context.Context, ac authz.Context, fields models.ProfileFields) (version int64, err error) {
	defer recoverInternal(ctx, s.log, "write", &err)

	if err := s.allow(ac, authz.ProfileWrite); err != nil {
		return 0, err
	}
	if err := malformedIf(fields.Validate()); err != nil {
		return 0, err
	}
	if fields.ProfileImageKey != "" && !strings.HasPrefix(fields.ProfileImageKey, imagePrefix(ac.Target)) {
		return 0, common.ErrInvalidReference
	}

	repo := s.repomanager.Profiles(s.db)

	if err := checkAppUser(ctx, repo, fields.AppUserID); err != nil {
		return 0, err
	}

	version, err = repo.AppendVersion(ctx, ac.Target, fields, ac.Caller)
	if err != nil {
		return 0, common.StoreFailure(err)
	}

	s.log.Info(ctx, "profile revised", "account_no", ac.Target, "version", version, "edited_by", ac.Caller)
	return version, nil
}

// History returns every revision, oldest first.
func (s *ProfileService) History(ctx context.Context, ac authz.Context) (h []models.SellerProfile, err error) {
	defer recoverInternal(ctx, s.log, "history", &err)

	if err := s.allow(ac, authz.ProfileRead); err != nil {
		return nil, err
	}

	h, err = s.repomanager.Profiles(s.db).History(ctx, ac.Target)
	if err != nil {
		return nil, common.StoreFailure(err)
	}
	if len(h) == 0 {
		return nil, common.ErrorNotFound
	}
	return h, nil
}

// ImageUploadURL reserves a new object key for the target's profile image
// and returns it with a presigned PUT. The key becomes visible only after
// a Write that references it.
func (s *ProfileService) ImageUploadURL(ctx context.Context, ac authz.Context) (key, url string, err error) {
	defer recoverInternal(ctx, s.log, "image_upload_url", &err)

	if err := s.allow(ac, authz.ProfileWrite); err != nil {
		return "", "", err
	}

	key = assets.ProfileImageKey(ac.Target)
	url, err = s.images.PutURL(ctx, key)
	if err != nil {
		s.log.Error(ctx, "presign put failed", "error", err)
		return "", "", common.StoreFailure(err)
	}
	return key, url, nil
}

// ImageURL returns a presigned GET for the current profile image.
func (s *ProfileService) ImageURL(ctx context.Context, ac authz.Context) (url string, err error) {
	defer recoverInternal(ctx, s.log, "image_url", &err)

	if err := s.allow(ac, authz.ProfileRead); err != nil {
		return "", err
	}

	p, err := s.repomanager.Profiles(s.db).GetCurrent(ctx, ac.Target)
	if err != nil {
		return "", common.StoreFailure(err)
	}
	if p.ProfileImageKey == "" {
		return "", common.ErrorNotFound
	}

	url, err = s.images.GetURL(ctx, p.ProfileImageKey)
	if err != nil {
		s.log.Error(ctx, "presign get failed", "error", err)
		return "", common.StoreFailure(err)
	}
	return url, nil
}

func imagePrefix(accountNo int64) string {
	return fmt.Sprintf("sellers/%d/", accountNo)
}

// checkAppUser rejects a dangling marketplace app user reference.
func checkAppUser(ctx context.Context, repo profiles.Repository, appUserID string) error {
	if appUserID == "" {
		return nil
	}
	ok, err := repo.AppUserExists(ctx, appUserID)
	if err != nil {
		return common.StoreFailure(err)
	}
	if !ok {
		return common.ErrInvalidReference
	}
	return nil
}
