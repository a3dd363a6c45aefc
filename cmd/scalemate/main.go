package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mithrel/scalemate/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, cli.NewRootCmd())
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "scalemate:", err)
		os.Exit(1)
	}
}
