//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"PulseBoard/pkg/config"
	"PulseBoard/pkg/server"
)

// InitializeApp assembles the full application from configuration.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideClickHouse,
		ProvideStateStore,
		ProvideAlertStore,
		ProvideSetupStore,
		ProvideSettingsStore,
		ProvideAlertPublisher,
		ProvideSnapshotCache,
		ProvideStore,
		ProvideDirtyTracker,
		ProvideAlertLog,
		ProvideDetector,
		ProvideIngestor,
		ProvideSyncer,
		ProvideHydrator,
		ProvideFeeds,
		ProvideHandlers,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil
}
