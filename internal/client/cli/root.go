package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) getStatus() string {
	s := ""
	if sess := a.sctx.Session(); sess != nil {
		s = sess.UserID + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the interactive command loop until the user exits or input is
// exhausted. The connectivity watcher runs alongside it and stops when the
// loop returns.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to TruFund CLI (type 'help' for commands)")

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)
	}()

	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) printFieldErrors(fe map[string]string) {
	for field, msg := range fe {
		fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
	}
}
