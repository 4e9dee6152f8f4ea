// Command tripctl is a developer CLI for the trip planner backend. It signs
// in, manages travel preferences and runs route searches through the same
// client library the apps use.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	apierrors "github.com/kbukum/tripclient/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
		stop()
		os.Exit(1)
	}
}

// errorMessage prefers the user-presentable APIError message.
func errorMessage(err error) string {
	if apiErr, ok := apierrors.As(err); ok {
		if apiErr.HasStatus() {
			return fmt.Sprintf("%s (%s, HTTP %d)", apiErr.Message, apiErr.Code, apiErr.StatusCode)
		}
		return fmt.Sprintf("%s (%s)", apiErr.Message, apiErr.Code)
	}
	return err.Error()
}
