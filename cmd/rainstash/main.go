package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"rainstash/internal/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "rainstash:", err)
		return 1
	}
	return 0
}
