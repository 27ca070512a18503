package fleet

import (
	"embed"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/infrastructure/persistence"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/presentation/controllers"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/configuration"
)

//go:embed infrastructure/persistence/migrations/*.sql
var migrationFiles embed.FS

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "fleet"
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	referenceRepo := persistence.NewReferenceRepository()
	clientRepo := persistence.NewClientRepository()
	vehicleRepo := persistence.NewVehicleRepository()

	app.RegisterServices(
		services.NewReferenceService(referenceRepo, app.EventPublisher()),
		services.NewClientService(clientRepo, app.EventPublisher()),
		services.NewVehicleService(vehicleRepo, app.EventPublisher()),
		services.NewVehicleImportService(vehicleRepo, clientRepo, referenceRepo, services.ImportConfig{
			BatchWidth: conf.Import.BatchWidth,
			MaxRows:    conf.Import.MaxRows,
		}),
	)

	app.RegisterControllers(
		controllers.NewReferencesAPIController(app),
		controllers.NewClientsAPIController(app),
		controllers.NewVehiclesAPIController(app),
		controllers.NewVehicleImportController(app),
	)

	app.Migrations().RegisterSchema(m.Name(), &migrationFiles, "infrastructure/persistence/migrations")
	return nil
}
