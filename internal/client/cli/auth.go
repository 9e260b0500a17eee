package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/client/api"
	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// getSimpleText and getPassword are indirections swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errUsage = errors.New("usage")

// Register prompts for the account fields and a password twice. The server
// checks that both passwords match.
func (a *App) Register(ctx context.Context) error {
	var req api.RegisterRequest
	var err error

	if req.UserName, err = getSimpleText(a.reader, "Enter user name", a.out); err != nil {
		return err
	}
	if req.FullName, err = getSimpleText(a.reader, "Enter full name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	req.Password, req.ConfirmPassword = string(password), string(confirm)
	if err := a.api.Register(ctx, req); err != nil {
		return err
	}

	a.userName = req.UserName
	fmt.Fprintln(a.out, "Registered and logged in.")
	return nil
}

// Login accepts a user name or an email.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter user name or email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, login, string(password)); err != nil {
		return err
	}

	a.userName = login
	a.nextCursor = ""
	fmt.Fprintln(a.out, "Login successful.")
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.api.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Tokens refreshed.")
	return nil
}

func (a *App) Check(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: check <username or email>", errUsage)
	}

	free, err := a.api.CheckUser(ctx, args[0])
	if err != nil {
		return err
	}
	if free {
		fmt.Fprintf(a.out, "%s is available.\n", args[0])
	} else {
		fmt.Fprintf(a.out, "%s is taken.\n", args[0])
	}
	return nil
}

func (a *App) Logout(_ context.Context) error {
	a.api.Logout()
	a.userName = ""
	a.nextCursor = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
