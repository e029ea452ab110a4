package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/raoul-lang/raoul/internal/cliapp"
)

func main() {
	// Catch panics and show a user-friendly error instead of a raw trace,
	// unless DEBUG=1 asks for the trace back.
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code := cliapp.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
