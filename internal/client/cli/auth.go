package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/selleradmin/internal/rpc"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// signUp registers a new seller. The account starts pending until the
// master activates it.
func (a *App) signUp(ctx context.Context) error {
	loginID, err := getSimpleText(a.reader, "Enter login id", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	var fields = emptyFields()
	if err := a.promptProfile(&fields); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	account, err := a.api.SignUp(ctx, &rpc.SignUpRequest{LoginID: loginID, Password: string(password), Profile: fields})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered, waiting for approval")
	return a.printJSON(account)
}

// login signs in as loginID, prompting for it when empty.
func (a *App) login(ctx context.Context, loginID string) error {
	var err error
	if loginID == "" {
		loginID, err = getSimpleText(a.reader, "Enter login id", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.api.SignIn(ctx, loginID, string(password))
	if err != nil {
		return err
	}

	a.session = &session{loginID: loginID, accountNo: res.AccountNo, role: res.Role}
	fmt.Fprintf(a.out, "Signed in as %s (account %d)\n", loginID, res.AccountNo)
	return nil
}

func (a *App) logout() {
	a.api.SetAccessToken("")
	a.session = nil
	fmt.Fprintln(a.out, "Signed out")
}
