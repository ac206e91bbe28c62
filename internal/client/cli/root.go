package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/pdstore/internal/client/client"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.email != "" {
		s = a.email + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// restoreSession picks up the session saved by an earlier run, if any.
func (a *App) restoreSession(ctx context.Context) {
	email, err := a.authService.Restore(ctx)
	switch {
	case err == nil:
		a.setEmail(email)
		fmt.Fprintf(a.out, "Signed in as %s\n", email)
	case errors.Is(err, client.ErrNotSignedIn):
		fmt.Fprintln(a.out, "Not signed in. Use 'signup' or 'login'.")
	default:
		log.Printf("Session restore failed: %s", err.Error())
	}
}

// Root restores the session, starts the connectivity watcher and runs the
// REPL until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to the Personal Data Store CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	a.restoreSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
