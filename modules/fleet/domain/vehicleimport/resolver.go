package vehicleimport

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/client"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
)

// Resolver turns raw reference cells into ids. One strategy is selected
// per run; row validation itself is strategy-agnostic.
type Resolver interface {
	ResolveReference(kind reference.Kind, raw string) (uuid.UUID, error)
	DefaultReference(kind reference.Kind) (uuid.UUID, bool)
	ResolveClient(raw string) (uuid.UUID, error)
	ReferenceColumn(kind reference.Kind) string
	ClientColumn() string
}

var nameColumns = map[reference.Kind]string{
	reference.KindBodyType:        ColBodyType,
	reference.KindVehicleCategory: ColCategory,
	reference.KindVehicleType:     ColVehicleType,
}

var idColumns = map[reference.Kind]string{
	reference.KindBodyType:        ColBodyTypeID,
	reference.KindVehicleCategory: ColCategoryID,
	reference.KindVehicleType:     ColVehicleTypeID,
}

func defaultsOf(values map[reference.Kind][]reference.Value) map[reference.Kind]uuid.UUID {
	defaults := make(map[reference.Kind]uuid.UUID)
	for kind, set := range values {
		for _, v := range set {
			if v.IsDefault() && v.IsActive() {
				defaults[kind] = v.ID()
				break
			}
		}
	}
	return defaults
}

type nameResolver struct {
	names    map[reference.Kind]map[string]uuid.UUID
	defaults map[reference.Kind]uuid.UUID
	clients  map[string]uuid.UUID
}

// NewNameResolver matches trimmed names case-insensitively against the
// active reference and client snapshots taken at the start of the run.
func NewNameResolver(values map[reference.Kind][]reference.Value, clients []client.Client) Resolver {
	names := make(map[reference.Kind]map[string]uuid.UUID, len(values))
	for kind, set := range values {
		byName := make(map[string]uuid.UUID, len(set))
		for _, v := range set {
			if v.IsActive() {
				byName[strings.ToLower(strings.TrimSpace(v.Name()))] = v.ID()
			}
		}
		names[kind] = byName
	}

	byClientName := make(map[string]uuid.UUID, len(clients))
	for _, c := range clients {
		if c.IsActive() {
			byClientName[strings.ToLower(strings.TrimSpace(c.Name()))] = c.ID()
		}
	}

	return &nameResolver{
		names:    names,
		defaults: defaultsOf(values),
		clients:  byClientName,
	}
}

func (r *nameResolver) ResolveReference(kind reference.Kind, raw string) (uuid.UUID, error) {
	id, ok := r.names[kind][strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return uuid.Nil, fmt.Errorf("%s %q not found", nameColumns[kind], strings.TrimSpace(raw))
	}
	return id, nil
}

func (r *nameResolver) DefaultReference(kind reference.Kind) (uuid.UUID, bool) {
	id, ok := r.defaults[kind]
	return id, ok
}

func (r *nameResolver) ResolveClient(raw string) (uuid.UUID, error) {
	id, ok := r.clients[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return uuid.Nil, fmt.Errorf("client %q not found", strings.TrimSpace(raw))
	}
	return id, nil
}

func (r *nameResolver) ReferenceColumn(kind reference.Kind) string { return nameColumns[kind] }
func (r *nameResolver) ClientColumn() string                      { return ColClient }

type idResolver struct {
	ids      map[reference.Kind]map[uuid.UUID]struct{}
	defaults map[reference.Kind]uuid.UUID
	clients  map[uuid.UUID]struct{}
}

// NewIDResolver checks ids against the known active sets instead of
// matching names.
func NewIDResolver(values map[reference.Kind][]reference.Value, clients []client.Client) Resolver {
	ids := make(map[reference.Kind]map[uuid.UUID]struct{}, len(values))
	for kind, set := range values {
		byID := make(map[uuid.UUID]struct{}, len(set))
		for _, v := range set {
			if v.IsActive() {
				byID[v.ID()] = struct{}{}
			}
		}
		ids[kind] = byID
	}

	clientIDs := make(map[uuid.UUID]struct{}, len(clients))
	for _, c := range clients {
		if c.IsActive() {
			clientIDs[c.ID()] = struct{}{}
		}
	}

	return &idResolver{
		ids:      ids,
		defaults: defaultsOf(values),
		clients:  clientIDs,
	}
}

func (r *idResolver) ResolveReference(kind reference.Kind, raw string) (uuid.UUID, error) {
	column := idColumns[kind]
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q is not a valid id", column, strings.TrimSpace(raw))
	}
	if _, ok := r.ids[kind][id]; !ok {
		return uuid.Nil, fmt.Errorf("%s %q not found", column, strings.TrimSpace(raw))
	}
	return id, nil
}

func (r *idResolver) DefaultReference(kind reference.Kind) (uuid.UUID, bool) {
	id, ok := r.defaults[kind]
	return id, ok
}

func (r *idResolver) ResolveClient(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("client_id %q is not a valid id", strings.TrimSpace(raw))
	}
	if _, ok := r.clients[id]; !ok {
		return uuid.Nil, fmt.Errorf("client_id %q not found", strings.TrimSpace(raw))
	}
	return id, nil
}

func (r *idResolver) ReferenceColumn(kind reference.Kind) string { return idColumns[kind] }
func (r *idResolver) ClientColumn() string                      { return ColClientID }
