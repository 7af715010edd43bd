package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	UploadAvatar(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Settings(ctx context.Context) error
	SignOut(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Sawari CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signed out:
//	  - help           — show available commands
//	  - signup         — create an account
//	  - signin         — authenticate
//	  - reset          — send a password reset email
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - profile        — show the profile
//	  - edit           — edit the profile
//	  - avatar         — upload a profile photo
//	  - dashboard      — show live location
//	  - settings       — theme, language, notifications, privacy
//	  - signout        — end the session
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sawari> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: profile, edit, avatar, dashboard, settings, signout, exit")
			} else {
				printlnFn("Available commands: signup, signin, reset, exit")
			}

		case "signup":
			_ = a.SignUp(ctx)

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "avatar":
			_ = a.UploadAvatar(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "settings":
			_ = a.Settings(ctx)

		case "signout", "logout":
			_ = a.SignOut(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
