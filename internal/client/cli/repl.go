package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	Survey(ctx context.Context) error
	Challenges(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the pdstore CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help                  show available commands
//	  - signup | register     create an account
//	  - login                 authenticate
//	  - exit | quit           leave the program
//
//	Logged in:
//	  - profile | dashboard   show profile and selected challenges
//	  - survey                fill in the survey
//	  - challenges            list the challenge catalog
//	  - logout                forget the session
//	  - exit | quit           leave the program
//
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pds %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, survey, challenges, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "profile", "dashboard", "survey", "challenges", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			switch cmd {
			case "survey":
				cmdErr = a.Survey(ctx)
			case "challenges":
				cmdErr = a.Challenges(ctx)
			case "logout":
				cmdErr = a.Logout(ctx)
			default:
				cmdErr = a.Profile(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
	}
}
