// Command apiserver runs the acronym extraction HTTP API.
//
// Usage:
//
//	apiserver
//
// Configuration is read from config.yaml and environment variables; see
// internal/config.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/acrodocs/acrodocs-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
