// Package cli provides the interactive pdstore command-line client.
//
// It wires configuration, the local session store, API services and an
// interactive REPL. Typical flow: restore the saved session (or sign up /
// log in), start a background connectivity watcher, then run commands.
//
// Commands:
//   - signup / login / logout
//   - profile: show the dashboard (profile fields and selected challenges)
//   - survey: fill in the survey and replace the selected challenges
//   - challenges: list the challenge catalog
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
