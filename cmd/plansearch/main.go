// Command plansearch solves planning problems with the plansearch engine.
//
// Usage:
//
//	plansearch solve problems/*.yaml
//	plansearch solve --timeout 10s --metrics problem.yaml
//	plansearch grid --width 60 --height 30 --seed 7
//	plansearch grid --trace-steps | jq .
//
// Interrupting the command aborts the running searches; they report status
// "aborted".
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
