package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) prompt() string {
	if a.session == nil {
		return "sellerctl> "
	}
	return fmt.Sprintf("sellerctl (%s %s)> ", a.session.loginID, a.session.role)
}

const helpLoggedOut = "Available commands: signup, login, exit"

const helpLoggedIn = `Available commands:
  passwd [account_no]            change a password
  profile [account_no]           show the current profile
  edit-profile [account_no]      write a new profile revision
  history [account_no]           list every profile revision
  upload-url [account_no]        presign a profile image upload
  upload-image <path> [acct_no]  upload a profile image and reference it
  image-url [account_no]         presign the profile image download
  status [account_no]            show a seller status
  set-status <account_no> <st>   change a seller status (master)
  search <keyword>               search sellers by name (master)
  list [key=value ...]           list sellers (master); keys: account_no,
                                 login, name_ko, name_en, status, from, to,
                                 offset, limit
  logout, exit`

// Root runs the REPL until the input ends or the user exits.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to sellerctl (type 'help' for commands)")

	if a.config.LoginID != "" {
		a.report(a.login(ctx, a.config.LoginID))
	}

	for {
		fmt.Fprint(a.out, a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if !a.dispatch(ctx, parts[0], parts[1:]) {
			fmt.Fprintln(a.out, "Bye!")
			return
		}
	}
}

// dispatch runs one command and reports whether the REPL should continue.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(a.out, helpLoggedIn)
		} else {
			fmt.Fprintln(a.out, helpLoggedOut)
		}
		return true
	case "exit", "quit":
		return false
	case "signup":
		a.report(a.signUp(ctx))
		return true
	case "login":
		a.report(a.login(ctx, ""))
		return true
	}

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return true
	}

	switch cmd {
	case "logout":
		a.logout()
	case "passwd":
		a.report(a.passwd(ctx, args))
	case "profile":
		a.report(a.profile(ctx, args))
	case "edit-profile":
		a.report(a.editProfile(ctx, args))
	case "history":
		a.report(a.history(ctx, args))
	case "upload-url":
		a.report(a.uploadURL(ctx, args))
	case "upload-image":
		a.report(a.uploadImage(ctx, args))
	case "image-url":
		a.report(a.imageURL(ctx, args))
	case "status":
		a.report(a.status(ctx, args))
	case "set-status":
		a.report(a.setStatus(ctx, args))
	case "search":
		a.report(a.search(ctx, args))
	case "list":
		a.report(a.list(ctx, args))
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
	return true
}
