package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Vinuka-CS/seed-to-stream/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes bad input (exit 2) from everything else (exit 1) so
// scripts can tell a fixable invocation apart from an outage.
func exitCode(err error) int {
	if services.IsSurfaced(err) {
		return 2
	}
	return 1
}
