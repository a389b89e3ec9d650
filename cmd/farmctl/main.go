package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"fruitfarm/app"
	"fruitfarm/config"
	"fruitfarm/pkg/logger"
)

func main() {
	log := logger.FromEnv()
	defer log.Sync()

	build := func(ctx context.Context) (*app.App, error) {
		return app.Build(ctx, config.Load(log), log)
	}
	if err := newRootCmd(build).Execute(); err != nil {
		log.Debug("farmctl failed", zap.Error(err))
		os.Exit(1)
	}
}
