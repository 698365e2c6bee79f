// Package sellers answers directory queries over seller accounts joined
// with their current profile revision.
package sellers

import (
	"context"

	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

type Repository interface {
	// List returns one page ordered by account_no descending and the total
	// number of matching sellers.
	List(ctx context.Context, filter models.ListFilter) (*models.SellerPage, error)
	// SearchByName matches keyword as a case-insensitive substring of the
	// current Korean display name. Exact matches rank before prefix matches,
	// prefix before other substrings; ties are broken by account_no.
	SearchByName(ctx context.Context, keyword string, limit int) ([]models.SellerSummary, error)
}
