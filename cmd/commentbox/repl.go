package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"commentbox/internal/autosave"
	"commentbox/internal/service"
	"commentbox/internal/store"
)

// replSession pairs the background saver with the lock that serializes store
// access against it. One-shot commands never start the saver, so the lock is
// contended only in repl mode.
type replSession struct {
	saver *autosave.Saver
	mu    *sync.Mutex
}

// repl runs an interactive session. Commands mirror the one-shot CLI; the
// background saver persists the snapshot on a fixed interval and once more
// on exit.
func repl(ctx context.Context, svc service.ThreadService, st *store.Store, sess *replSession, logger *zap.Logger) error {
	saverDone := make(chan struct{})
	saverCtx, stopSaver := context.WithCancel(ctx)
	go func() {
		sess.saver.Run(saverCtx)
		close(saverDone)
	}()
	defer func() {
		stopSaver()
		<-saverDone
	}()

	fmt.Printf("commentbox repl, session user %q (type 'help')\n", st.User().Username)
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Print(usageText)
		case "save":
			sess.mu.Lock()
			err := svc.SaveNow(ctx)
			sess.mu.Unlock()
			if err != nil {
				fmt.Println("error:", err)
			}
		case "repl":
			fmt.Println("already in a repl")
		default:
			sess.mu.Lock()
			err := run(ctx, svc, st, sess, logger, fields)
			sess.mu.Unlock()
			if err != nil {
				fmt.Println("error:", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}
