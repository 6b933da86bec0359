//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/runfit/internal/bootstrap"
	"github.com/yanqian/runfit/internal/domain/advisor"
	"github.com/yanqian/runfit/internal/infra/config"
	httpiface "github.com/yanqian/runfit/internal/interface/http"
	"github.com/yanqian/runfit/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideParseOptions,
		provideDatasetOptions,
		provideBlobCache,
		provideDatasetLoader,
		provideSnapshot,
		advisor.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
