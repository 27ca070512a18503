package modules

import (
	"github.com/fleetgrid/fleet-sdk/modules/core"
	"github.com/fleetgrid/fleet-sdk/modules/fleet"
	"github.com/fleetgrid/fleet-sdk/modules/insurance"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
)

// BuiltInModules is the default module set, in registration order. Core
// must come first so later modules can resolve its services.
var BuiltInModules = []application.Module{
	core.NewModule(),
	fleet.NewModule(),
	insurance.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
