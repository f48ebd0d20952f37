// Package di provides dependency injection configuration for the library server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/Alexandra151/LibrarySystem/internal/auth"
	"github.com/Alexandra151/LibrarySystem/internal/config"
	"github.com/Alexandra151/LibrarySystem/internal/di/providers"
	"github.com/Alexandra151/LibrarySystem/internal/logger"
	"github.com/Alexandra151/LibrarySystem/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideAuthorService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideLoanService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of every provider.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.AuthorService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.LoanService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
