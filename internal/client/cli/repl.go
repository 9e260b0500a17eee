package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Refresh(ctx context.Context) error
	Check(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string, done bool) error
	Delete(ctx context.Context, args []string) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Commands
// prompt on the same reader, so it must not be wrapped in a second buffer.
//
// Command errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("todo %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist [next], page <n>, done <id>, undone <id>, delete <id>, refresh, logout, exit")
			} else {
				printlnFn("Available commands: register, login, check <login>, exit")
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "refresh":
			err = a.Refresh(ctx)
		case "check":
			err = a.Check(ctx, args)
		case "logout":
			err = a.Logout(ctx)
		case "add":
			err = a.Add(ctx)
		case "l", "list":
			err = a.List(ctx, args)
		case "page":
			err = a.Page(ctx, args)
		case "done":
			err = a.Done(ctx, args, true)
		case "undone":
			err = a.Done(ctx, args, false)
		case "delete":
			err = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("error:", err)
		}
		if readErr != nil {
			return
		}
	}
}
