package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/pdstore/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for an email and password, creates the account and
// signs in with the returned token. The password is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Signup(ctx, email, password); err != nil {
		return err
	}

	a.setEmail(email)
	fmt.Fprintln(a.out, "Account created. Run 'survey' to fill in your profile.")
	return nil
}

// Login prompts for credentials and signs in. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.setEmail(email)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setEmail("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
