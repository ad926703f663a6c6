//go:build wireinject
// +build wireinject

package di

import (
	"StockDesk/pkg/config"
	"StockDesk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideSessionBackend,
		ProvideMarketCache,
		ProvideKafkaProducer,
		ProvideTradeClient,

		// Gateways and repositories
		ProvideMarket,
		ProvideMarketData,
		ProvidePopular,
		ProvidePositions,
		ProvideTrading,
		ProvideAccounts,
		ProvideAuthenticator,
		ProvideSessions,
		ProvideTradeJournal,
		ProvideLimiter,

		// Use cases
		ProvideCandles,
		ProvideTradeOrchestrator,
		ProvideStockPage,
		ProvideDashboard,
		ProvideLogin,

		// Transport
		ProvideSessionGate,
		ProvideHandlers,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
