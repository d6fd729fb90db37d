package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	NewInvoice(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.Status) error
	Export(ctx context.Context, id string) error
	Remind(ctx context.Context, id string) error
	EmailConfig(ctx context.Context) error
	Refresh(ctx context.Context) error
	Customers(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: new, (l)ist, show <id>, paid <id>, pending <id>, export <id>, remind <id>, customers, emailconfig, refresh, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Commands other than help, register, login and exit need a logged-in
// user. A handler error is printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("invoicer %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if quit := dispatch(ctx, a, cmd, args); quit {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	switch cmd {
	case "help":
		if a.isLoggedIn(ctx) {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return false
	case "register":
		report(a.Register(ctx))
		return false
	case "login":
		report(a.Login(ctx))
		return false
	case "exit", "quit":
		printlnFn("Bye!")
		return true
	}

	handler, needsID, known := command(a, cmd)
	if !known {
		printlnFn("Unknown command:", cmd)
		return false
	}
	if !a.isLoggedIn(ctx) {
		report(common.ErrUnauthorized)
		return false
	}
	if needsID && len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return false
	}
	id := ""
	if needsID {
		id = args[0]
	}
	report(handler(ctx, id))
	return false
}

func command(a execIface, cmd string) (handler func(ctx context.Context, id string) error, needsID bool, known bool) {
	noID := func(f func(context.Context) error) func(context.Context, string) error {
		return func(ctx context.Context, _ string) error { return f(ctx) }
	}
	switch cmd {
	case "logout":
		return noID(a.Logout), false, true
	case "whoami":
		return noID(a.WhoAmI), false, true
	case "new":
		return noID(a.NewInvoice), false, true
	case "l", "list":
		return noID(a.List), false, true
	case "customers":
		return noID(a.Customers), false, true
	case "emailconfig":
		return noID(a.EmailConfig), false, true
	case "refresh":
		return noID(a.Refresh), false, true
	case "show":
		return a.Show, true, true
	case "export":
		return a.Export, true, true
	case "remind":
		return a.Remind, true, true
	case "paid":
		return func(ctx context.Context, id string) error { return a.SetStatus(ctx, id, models.StatusPaid) }, true, true
	case "pending":
		return func(ctx context.Context, id string) error { return a.SetStatus(ctx, id, models.StatusPending) }, true, true
	}
	return nil, false, false
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err.Error())
	}
}
