package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/rpc"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

const dateLayout = "2006-01-02"

// target resolves the optional account_no argument; it defaults to the
// signed-in account.
func (a *App) target(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return a.session.accountNo, nil
	}
	no, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || no <= 0 {
		return 0, usageError{usage}
	}
	return no, nil
}

func (a *App) passwd(ctx context.Context, args []string) error {
	target, err := a.target(args, "passwd [account_no]")
	if err != nil {
		return err
	}

	req := &rpc.RotatePasswordRequest{AccountNo: target}

	if a.session.role != models.RoleMaster {
		old, err := getPassword("Current password", a.out)
		if err != nil {
			return err
		}
		defer wipe(old)
		req.OldPassword = string(old)
	}

	pw, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer wipe(pw)
	req.NewPassword = string(pw)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.api.RotatePassword(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	target, err := a.target(args, "profile [account_no]")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.api.GetProfile(ctx, target)
	if err != nil {
		return err
	}
	return a.printJSON(p)
}

func (a *App) editProfile(ctx context.Context, args []string) error {
	target, err := a.target(args, "edit-profile [account_no]")
	if err != nil {
		return err
	}

	fields := emptyFields()

	rctx, cancel := a.withTimeout(ctx)
	current, err := a.api.GetProfile(rctx, target)
	cancel()
	switch {
	case err == nil:
		fields = current.ProfileFields
	case !errors.Is(err, common.ErrorNotFound):
		return err
	}

	if err := a.promptProfile(&fields); err != nil {
		return err
	}

	wctx, cancel := a.withTimeout(ctx)
	defer cancel()

	v, err := a.api.UpdateProfile(wctx, target, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved revision %d\n", v)
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	target, err := a.target(args, "history [account_no]")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	h, err := a.api.ProfileHistory(ctx, target)
	if err != nil {
		return err
	}
	return a.printJSON(h)
}

func (a *App) uploadURL(ctx context.Context, args []string) error {
	target, err := a.target(args, "upload-url [account_no]")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.api.ProfileImageUploadURL(ctx, target)
	if err != nil {
		return err
	}
	return a.printJSON(res)
}

func (a *App) imageURL(ctx context.Context, args []string) error {
	target, err := a.target(args, "image-url [account_no]")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	url, err := a.api.ProfileImageURL(ctx, target)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}

func (a *App) status(ctx context.Context, args []string) error {
	target, err := a.target(args, "status [account_no]")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	st, err := a.api.GetSellerStatus(ctx, target)
	if err != nil {
		return err
	}
	return a.printJSON(rpc.SellerStatusResponse{AccountNo: target, Status: st})
}

// setStatusUsage lists the statuses the server accepts.
func setStatusUsage() string {
	names := make([]string, 0, len(models.SellerStatuses()))
	for _, st := range models.SellerStatuses() {
		names = append(names, string(st))
	}
	return "set-status <account_no> <" + strings.Join(names, "|") + ">"
}

func (a *App) setStatus(ctx context.Context, args []string) error {
	usage := setStatusUsage()
	if len(args) != 2 {
		return usageError{usage}
	}
	target, err := a.target(args[:1], usage)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.api.ChangeSellerStatus(ctx, target, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Seller %d is now %s\n", target, args[1])
	return nil
}

func (a *App) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError{"search <keyword>"}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	items, err := a.api.SearchSellers(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	return a.printJSON(items)
}

func (a *App) list(ctx context.Context, args []string) error {
	filter, err := parseListFilter(args)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	page, err := a.api.ListSellers(ctx, filter)
	if err != nil {
		return err
	}
	return a.printJSON(page)
}

// parseListFilter reads key=value arguments of the list command.
func parseListFilter(args []string) (models.ListFilter, error) {
	const usage = "list [account_no=N] [login=ID] [name_ko=S] [name_en=S] [status=S] [from=YYYY-MM-DD] [to=YYYY-MM-DD] [offset=N] [limit=N]"

	var f models.ListFilter
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok || val == "" {
			return f, usageError{usage}
		}

		var err error
		switch key {
		case "account_no":
			f.AccountNo, err = strconv.ParseInt(val, 10, 64)
		case "login":
			f.LoginID = val
		case "name_ko":
			f.NameKo = val
		case "name_en":
			f.NameEn = val
		case "status":
			f.Status = models.SellerStatus(val)
		case "from":
			f.CreatedFrom, err = time.Parse(dateLayout, val)
		case "to":
			// exclusive bound at the start of the next day
			var day time.Time
			day, err = time.Parse(dateLayout, val)
			f.CreatedTo = day.AddDate(0, 0, 1)
		case "offset":
			f.Offset, err = strconv.Atoi(val)
		case "limit":
			f.Limit, err = strconv.Atoi(val)
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return f, usageError{usage}
		}
	}
	return f, nil
}
