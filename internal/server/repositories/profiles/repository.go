// Package profiles stores the append-only revision history of seller
// profiles.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

type Repository interface {
	// GetCurrent returns the revision with the highest version.
	GetCurrent(ctx context.Context, accountNo int64) (*models.SellerProfile, error)
	// AppendVersion stores fields as the next revision in one atomic step and
	// returns the version it was given. Concurrent appends for one account
	// always get distinct versions.
	AppendVersion(ctx context.Context, accountNo int64, fields models.ProfileFields, editedBy int64) (int64, error)
	History(ctx context.Context, accountNo int64) ([]models.SellerProfile, error)
	AppUserExists(ctx context.Context, appUserID string) (bool, error)
}
