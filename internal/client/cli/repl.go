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

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Sell(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
}

const helpText = "Available commands: list, show <id>, add, edit <id>, delete <id>, sell <id>, " +
	"export <id>, import [path|s3://bucket/key], share <id>, settings [set <name> <value>|reset], exit"

// runREPL reads commands line by line from in and dispatches them to a.
// Errors returned by handlers are printed and the loop goes on. The loop
// exits on EOF, on "exit"/"quit", or when ctx is cancelled.
//
// Handlers read their own follow-up input from the same reader, so the
// REPL must not buffer ahead of them.
func runREPL(ctx context.Context, a execIface, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn("inventory> ")
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "add":
			cmdErr = a.Add(ctx)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete", "rm":
			cmdErr = a.Delete(ctx, args)
		case "sell":
			cmdErr = a.Sell(ctx, args)
		case "export":
			cmdErr = a.Export(ctx, args)
		case "import":
			cmdErr = a.Import(ctx, args)
		case "share":
			cmdErr = a.Share(ctx, args)
		case "settings":
			cmdErr = a.Settings(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(failure(describe(cmdErr)))
		}
	}
}

// RunShell starts the interactive shell on the App's input.
func (a *App) RunShell(ctx context.Context) {
	printlnFn("Inventory shell (type 'help' for commands)")
	runREPL(ctx, a, a.reader)
}
