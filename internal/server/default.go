package server

import (
	"net/http"

	"github.com/sirupsen/logrus"

	coreservices "github.com/fleetgrid/fleet-sdk/modules/core/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/configuration"
	"github.com/fleetgrid/fleet-sdk/pkg/constants"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
	"github.com/fleetgrid/fleet-sdk/pkg/server"
	"github.com/fleetgrid/fleet-sdk/pkg/shared"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

// Default assembles the shared middleware stack and the HTTP server.
// Registration order matters: request params first so the logger and
// every later stage can read them, identity last so it can mark the
// params authenticated.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	authService := app.Service(coreservices.AuthService{}).(*coreservices.AuthService)

	app.RegisterMiddleware(
		middleware.RequestParams(),
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, app.DB()),
		middleware.Cors(options.Configuration.Origin),
		middleware.Authorize(authService),
	)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shared.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shared.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	return server.NewHTTPServer(app, notFound, methodNotAllowed), nil
}
