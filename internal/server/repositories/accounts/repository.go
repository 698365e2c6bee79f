// Package accounts stores accounts and their credential hashes.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByLoginID(ctx context.Context, loginID string) (*models.Account, error)

	GetCredentialHash(ctx context.Context, accountNo int64) (string, error)
	SetCredentialHash(ctx context.Context, accountNo int64, hash string) error
	// CompareAndSetCredentialHash replaces the hash only if it still equals
	// oldHash; otherwise it returns common.ErrVersionConflict.
	CompareAndSetCredentialHash(ctx context.Context, accountNo int64, oldHash, newHash string) error

	SetStatus(ctx context.Context, accountNo int64, status models.SellerStatus) error
	GetStatus(ctx context.Context, accountNo int64) (models.SellerStatus, error)
}
