package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.failWith
}
func (f *fakeExec) Signup(context.Context) error {
	f.loggedIn = true
	return f.record("signup")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Profile(context.Context) error    { return f.record("profile") }
func (f *fakeExec) Survey(context.Context) error     { return f.record("survey") }
func (f *fakeExec) Challenges(context.Context) error { return f.record("challenges") }
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func lines(s ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(s, "\n")))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, lines(
		"help",
		"profile",
		"login",
		"help",
		"survey",
		"dashboard",
		"challenges",
		"foobar",
		"logout",
		"exit",
		"profile",
	))

	assert.Equal(t, []string{"login", "survey", "profile", "challenges", "logout"}, exec.calls)
	assert.Contains(t, *out, "Available commands: signup, login, exit")
	assert.Contains(t, *out, "Available commands: profile, survey, challenges, logout, exit")
	assert.Contains(t, *out, "Please login first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "pds status> ")
}

func TestRunREPL_RegisterAliasAndEOF(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, lines("register", "", "profile"))

	assert.Equal(t, []string{"signup", "profile"}, exec.calls)
}

func TestRunREPL_CommandErrorsArePrinted(t *testing.T) {
	out := silencePrintln(t)

	exec := &fakeExec{loggedIn: true, failWith: errors.New("server unavailable")}
	runREPL(context.Background(), exec, func() string { return "s" }, lines("challenges", "quit"))

	assert.Equal(t, []string{"challenges"}, exec.calls)
	assert.Contains(t, *out, "Error: server unavailable")
}
