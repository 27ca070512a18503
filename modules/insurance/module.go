package insurance

import (
	"embed"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/infrastructure/persistence"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/presentation/controllers"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
)

//go:embed infrastructure/persistence/migrations/*.sql
var migrationFiles embed.FS

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "insurance"
}

func (m *Module) Register(app application.Application) error {
	insurerRepo := persistence.NewInsurerRepository()
	policyRepo := persistence.NewPolicyRepository()
	stickerRepo := persistence.NewStickerRepository()

	app.RegisterServices(
		services.NewInsurerService(insurerRepo, app.EventPublisher()),
		services.NewPolicyService(policyRepo, app.EventPublisher()),
		services.NewStickerService(stickerRepo, policyRepo, app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewInsurersAPIController(app),
		controllers.NewPoliciesAPIController(app),
		controllers.NewStickersAPIController(app),
	)

	app.Migrations().RegisterSchema(m.Name(), &migrationFiles, "infrastructure/persistence/migrations")
	return nil
}
