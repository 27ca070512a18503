package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetgrid/fleet-sdk/internal/server"
	"github.com/fleetgrid/fleet-sdk/modules"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/configuration"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
	"github.com/fleetgrid/fleet-sdk/pkg/logging"
	"github.com/fleetgrid/fleet-sdk/pkg/metrics"
)

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	ctx := context.Background()

	if conf.OpenTelemetry.Enabled {
		shutdown := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer shutdown()
	}

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		logger.WithError(err).Error("failed to connect to the database")
		os.Exit(1)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})

	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		logger.WithError(err).Error("failed to load modules")
		os.Exit(1)
	}

	if err := app.Migrations().Apply(ctx); err != nil {
		logger.WithError(err).Error("failed to apply migrations")
		os.Exit(1)
	}

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	srv, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})
	if err != nil {
		logger.WithError(err).Error("failed to assemble the server")
		os.Exit(1)
	}

	logger.WithField("address", conf.SocketAddress).Info("listening")
	if err := srv.Start(conf.SocketAddress); err != nil {
		logger.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}
