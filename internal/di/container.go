// Package di provides dependency injection configuration for the Foodgram server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/foodgramapp/foodgram-server/internal/api"
	"github.com/foodgramapp/foodgram-server/internal/auth"
	"github.com/foodgramapp/foodgram-server/internal/config"
	"github.com/foodgramapp/foodgram-server/internal/di/providers"
	"github.com/foodgramapp/foodgram-server/internal/logger"
	"github.com/foodgramapp/foodgram-server/internal/service"
)

// NewContainer creates the DI container, loading configuration from the process arguments.
func NewContainer() *do.RootScope {
	injector := do.New()
	do.Provide(injector, providers.ProvideConfig)
	registerProviders(injector)
	return injector
}

// NewContainerWithConfig creates the DI container around an already loaded configuration.
func NewContainerWithConfig(cfg *config.Config) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	registerProviders(injector)
	return injector
}

func registerProviders(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideRecipeService)
	do.Provide(injector, providers.ProvideRelationService)
	do.Provide(injector, providers.ProvideShoppingListService)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)
}

// Bootstrap initializes the core services without binding a listener.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*auth.TokenService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.UserService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*api.Server](injector); err != nil {
		return err
	}
	return nil
}

// Start bootstraps the container and starts the HTTP server.
func Start(injector do.Injector) error {
	if err := Bootstrap(injector); err != nil {
		return err
	}
	_, err := do.Invoke[*providers.HTTPServerHandle](injector)
	return err
}
