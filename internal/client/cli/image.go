package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/selleradmin/internal/netx"
)

// putPresigned is a test seam for netx.PutPresigned.
var putPresigned = netx.PutPresigned

// uploadImage stores a local file as the profile image: it presigns an
// upload, PUTs the bytes and then writes a profile revision that points to
// the new key.
func (a *App) uploadImage(ctx context.Context, args []string) error {
	const usage = "upload-image <path> [account_no]"
	if len(args) == 0 || len(args) > 2 {
		return usageError{usage}
	}
	target, err := a.target(args[1:], usage)
	if err != nil {
		return err
	}

	body, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	up, err := a.api.ProfileImageUploadURL(ctx, target)
	if err != nil {
		return err
	}
	if err := putPresigned(ctx, up.URL, body); err != nil {
		return err
	}

	current, err := a.api.GetProfile(ctx, target)
	if err != nil {
		return err
	}
	fields := current.ProfileFields
	fields.ProfileImageKey = up.Key

	v, err := a.api.UpdateProfile(ctx, target, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Image uploaded, saved revision %d\n", v)
	return nil
}
