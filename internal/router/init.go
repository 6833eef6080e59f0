package router

import (
	"github.com/shopgrid/accounts-api/internal/application"
	"github.com/shopgrid/accounts-api/internal/container"
	pginfra "github.com/shopgrid/accounts-api/internal/infrastructure/postgres"
	handlers "github.com/shopgrid/accounts-api/internal/interface/http"
	"github.com/shopgrid/accounts-api/internal/router/modules"
	"github.com/shopgrid/accounts-api/pkg/validation"
)

// InitModules wires the account module from the container singletons and
// registers it with the router registry. Called once at startup.
func InitModules(r *Registry) {
	repo := pginfra.NewAccountRepository(container.GetPGPool())
	store := application.NewAccountStore(repo, validation.New(), container.GetLogger())

	// A typed nil publisher must stay nil behind the interface, otherwise
	// the service would try to publish through it.
	var pub application.NotificationPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	svc := application.NewAuthService(
		store,
		container.GetJWT(),
		pub,
		container.GetRedis(),
		container.GetLogger(),
		container.GetConfig().VerifyEmailURL,
	)

	handler := handlers.NewAccountHandler(svc, container.GetLogger())
	r.Add(modules.NewAccountModule(handler, container.GetJWT()))
}
