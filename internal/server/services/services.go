// Package services contains the server-side workflows. Every workflow asks
// the authorization gate first, validates its input second and only then
// touches the store, so a denied or malformed request never reaches the
// database.
package services

import (
	"context"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/logging"
)

// ImageStore presigns object storage URLs for profile images.
type ImageStore interface {
	PutURL(ctx context.Context, key string) (string, error)
	GetURL(ctx context.Context, key string) (string, error)
}

// recoverInternal is deferred by every workflow method: a panic below it
// is logged and reported as common.ErrorInternal.
func recoverInternal(ctx context.Context, log logging.Logger, op string, errp *error) {
	if p := recover(); p != nil {
		log.Error(ctx, "panic recovered", "op", op, "panic", p)
		*errp = common.ErrorInternal
	}
}

func malformedIf(err error) error {
	if err != nil {
		return common.Malformed(err)
	}
	return nil
}
