package core

import (
	"embed"

	"github.com/fleetgrid/fleet-sdk/modules/core/infrastructure/persistence"
	"github.com/fleetgrid/fleet-sdk/modules/core/presentation/controllers"
	"github.com/fleetgrid/fleet-sdk/modules/core/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
)

//go:embed infrastructure/persistence/migrations/*.sql
var migrationFiles embed.FS

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	userRepo := persistence.NewUserRepository()
	tokenRepo := persistence.NewTokenRepository()

	app.RegisterServices(
		services.NewUserService(userRepo, app.EventPublisher()),
		services.NewAuthService(userRepo, tokenRepo),
	)

	app.RegisterControllers(
		controllers.NewUsersAPIController(app),
	)

	app.Migrations().RegisterSchema(m.Name(), &migrationFiles, "infrastructure/persistence/migrations")
	return nil
}
