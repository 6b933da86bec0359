package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	apperrors "github.com/yanqian/runfit/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeDatasetError) {
			log.Fatalf("catalog unavailable, set DATA_URL or DATA_FILE: %v", err)
		}
		log.Fatalf("failed to wire application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
