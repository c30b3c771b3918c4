package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context, args []string) error

	Libraries(ctx context.Context) error
	Active(ctx context.Context) error
	Create(ctx context.Context, args []string) error
	Switch(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Cover(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error

	Users(ctx context.Context) error
	Status(ctx context.Context, args []string) error
}

const (
	guestHelp = "Available commands: register, login, help, exit"
	userHelp  = `Available commands:
  whoami                       show the signed-in user
  profile [first] [last]       show or change your name
  libs                         list your libraries
  active                       show the active library
  create <name>                create a library and make it active
  switch <id>                  make a library active
  rename <id> <name>           rename a library
  cover <id> [image path]      set or clear a library cover image
  delete <id>                  delete a library
  users                        list all users (superadmin)
  status <user id> <status>    set a user's status (superadmin)
  logout, help, exit`
)

// protected lists commands that need a session.
var protected = map[string]bool{
	"whoami": true, "profile": true, "libs": true, "active": true, "create": true,
	"switch": true, "rename": true, "cover": true, "delete": true, "users": true, "status": true,
}

// runREPL reads commands from reader until EOF or "exit". Command errors are
// printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("libhub [%s] > ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "profile":
			cmdErr = a.Profile(ctx, args)

		case "libs":
			cmdErr = a.Libraries(ctx)
		case "active":
			cmdErr = a.Active(ctx)
		case "create":
			cmdErr = a.Create(ctx, args)
		case "switch":
			cmdErr = a.Switch(ctx, args)
		case "rename":
			cmdErr = a.Rename(ctx, args)
		case "cover":
			cmdErr = a.Cover(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "users":
			cmdErr = a.Users(ctx)
		case "status":
			cmdErr = a.Status(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}
