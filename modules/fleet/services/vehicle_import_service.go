package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/client"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/vehicle"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/vehicleimport"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/metrics"
	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
	"github.com/fleetgrid/fleet-sdk/pkg/tabular"
)

// ErrUnsupportedFormat covers uploads that are neither CSV nor XLSX.
var ErrUnsupportedFormat = serrors.NewError("IMPORT_UNSUPPORTED_FORMAT", "file format is not supported")

// SideReference is a caller-supplied reference value that pre-populates
// the resolver snapshot for one run.
type SideReference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ImportCommand struct {
	Data     []byte
	Filename string
	Mode     vehicleimport.Mode
	// OwnerID pre-selects the client for every row; rows are then exempt
	// from carrying a client column.
	OwnerID uuid.UUID
	// References are merged into the run's snapshots, keyed by kind.
	References map[string][]SideReference
}

// ImportConfig bounds one run.
type ImportConfig struct {
	BatchWidth int
	MaxRows    int
}

// VehicleImportService drives the whole reconciliation pipeline: decode,
// header check, validation and resolution, duplicate pre-check, then
// batched concurrent writes with a per-row result ledger.
type VehicleImportService struct {
	vehicles   vehicle.Repository
	clients    client.Repository
	references reference.Repository
	config     ImportConfig
}

func NewVehicleImportService(
	vehicles vehicle.Repository,
	clients client.Repository,
	references reference.Repository,
	config ImportConfig,
) *VehicleImportService {
	return &VehicleImportService{
		vehicles:   vehicles,
		clients:    clients,
		references: references,
		config:     config,
	}
}

func (s *VehicleImportService) Import(ctx context.Context, cmd *ImportCommand) (vehicleimport.Summary, error) {
	actor, err := composables.UseUserID(ctx)
	if err != nil {
		return vehicleimport.Summary{}, err
	}

	format, ok := tabular.DetectFormat(cmd.Data, cmd.Filename)
	if !ok {
		metrics.ImportRuns.WithLabelValues("rejected").Inc()
		return vehicleimport.Summary{}, ErrUnsupportedFormat
	}

	table, err := tabular.Decode(cmd.Data, format)
	if err != nil {
		metrics.ImportRuns.WithLabelValues("rejected").Inc()
		return vehicleimport.Summary{}, err
	}

	if cmd.OwnerID != uuid.Nil {
		exists, err := s.clients.Exists(ctx, cmd.OwnerID)
		if err != nil {
			return vehicleimport.Summary{}, err
		}
		if !exists {
			metrics.ImportRuns.WithLabelValues("rejected").Inc()
			return vehicleimport.Summary{}, client.ErrNotFound
		}
	}

	resolver, err := s.buildResolver(ctx, cmd)
	if err != nil {
		return vehicleimport.Summary{}, err
	}

	existing, err := s.vehicles.ExistingRegistrationNos(ctx)
	if err != nil {
		return vehicleimport.Summary{}, err
	}

	valid, results, err := vehicleimport.Prepare(
		table, cmd.Mode, resolver, cmd.OwnerID, existing, s.config.MaxRows, time.Now(),
	)
	if err != nil {
		metrics.ImportRuns.WithLabelValues("rejected").Inc()
		return vehicleimport.Summary{}, err
	}

	// Writes run outside the request transaction so concurrent rows each
	// get their own connection and failures stay row-scoped.
	vehicleimport.ExecuteBatches(ctx, valid, s.config.BatchWidth, results, func(ctx context.Context, row vehicleimport.ParsedRow) error {
		_, err := s.vehicles.Create(ctx, vehicle.New(
			row.RegistrationNo,
			row.Make,
			row.Model,
			row.Year,
			row.ChassisNo,
			row.EngineNo,
			row.ClientID,
			row.BodyTypeID,
			row.CategoryID,
			row.VehicleTypeID,
			actor,
			vehicle.Options{
				SeatingCapacity: row.SeatingCapacity,
				CubicCapacity:   row.CubicCapacity,
				GrossWeight:     row.GrossWeight,
				ReceivedAt:      row.ReceivedAt,
			},
		))
		return err
	})

	summary := vehicleimport.NewSummary(results)
	metrics.ImportRuns.WithLabelValues("completed").Inc()
	metrics.ImportRows.WithLabelValues(string(vehicleimport.StatusSuccess)).Add(float64(summary.Succeeded))
	metrics.ImportRows.WithLabelValues(string(vehicleimport.StatusError)).Add(float64(summary.Failed))
	return summary, nil
}

func (s *VehicleImportService) buildResolver(ctx context.Context, cmd *ImportCommand) (vehicleimport.Resolver, error) {
	values := make(map[reference.Kind][]reference.Value)
	for _, kind := range []reference.Kind{reference.KindBodyType, reference.KindVehicleCategory, reference.KindVehicleType} {
		set, err := s.references.GetAllActiveByKind(ctx, kind)
		if err != nil {
			return nil, errors.Wrap(err, "fetch reference snapshot")
		}
		values[kind] = set
	}

	for rawKind, side := range cmd.References {
		kind, ok := reference.ParseKind(rawKind)
		if !ok {
			return nil, serrors.NewError("IMPORT_BAD_REFERENCES", fmt.Sprintf("unknown reference kind %q", rawKind))
		}
		for _, sr := range side {
			id, err := uuid.Parse(sr.ID)
			if err != nil {
				return nil, serrors.NewError("IMPORT_BAD_REFERENCES", fmt.Sprintf("invalid reference id %q", sr.ID))
			}
			values[kind] = append(values[kind], reference.Hydrate(
				id, kind, sr.Name, false, true, uuid.Nil, time.Time{}, time.Time{},
			))
		}
	}

	clients, err := s.clients.GetAllActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch client snapshot")
	}

	if cmd.Mode == vehicleimport.ModeIDs {
		return vehicleimport.NewIDResolver(values, clients), nil
	}
	return vehicleimport.NewNameResolver(values, clients), nil
}
