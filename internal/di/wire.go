//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"MarketPulse/pkg/config"
	"MarketPulse/pkg/server"
)

// InitializeApp builds the full application from configuration.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
