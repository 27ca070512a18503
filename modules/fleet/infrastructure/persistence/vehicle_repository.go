package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/vehicle"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/infrastructure/persistence/models"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/repo"
)

const (
	vehicleFindQuery = `
        SELECT
            v.id,
            v.registration_no,
            v.make,
            v.model,
            v.year,
            v.chassis_no,
            v.engine_no,
            v.seating_capacity,
            v.cubic_capacity,
            v.gross_weight,
            v.received_at,
            v.client_id,
            v.body_type_id,
            v.category_id,
            v.vehicle_type_id,
            v.is_active,
            v.created_by,
            v.updated_by,
            v.created_at,
            v.updated_at
        FROM vehicles v`

	vehicleCountQuery = `SELECT COUNT(v.id) FROM vehicles v`

	vehicleRegistrationNosQuery = `SELECT v.registration_no FROM vehicles v`

	vehicleInsertQuery = `
        INSERT INTO vehicles (
            registration_no, make, model, year, chassis_no, engine_no,
            seating_capacity, cubic_capacity, gross_weight, received_at,
            client_id, body_type_id, category_id, vehicle_type_id,
            is_active, created_by, updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        RETURNING
            id, registration_no, make, model, year, chassis_no, engine_no,
            seating_capacity, cubic_capacity, gross_weight, received_at,
            client_id, body_type_id, category_id, vehicle_type_id,
            is_active, created_by, updated_by, created_at, updated_at`
)

type PgVehicleRepository struct{}

func NewVehicleRepository() vehicle.Repository {
	return &PgVehicleRepository{}
}

func (g *PgVehicleRepository) GetPaginated(ctx context.Context, params *vehicle.FindParams) ([]vehicle.Vehicle, int64, error) {
	if params == nil {
		params = &vehicle.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	var where []string
	var args []any
	if params.ClientID != uuid.Nil {
		args = append(args, params.ClientID)
		where = append(where, "v.client_id = $1")
	}

	query := repo.Join(
		vehicleFindQuery,
		repo.JoinWhere(where...),
		"ORDER BY v.registration_no",
		repo.FormatLimitOffset(limit, offset),
	)
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanVehicles(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := repo.Join(vehicleCountQuery, repo.JoinWhere(where...))
	var total int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (g *PgVehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (vehicle.Vehicle, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return vehicle.Vehicle{}, err
	}

	rows, err := tx.Query(ctx, repo.Join(vehicleFindQuery, "WHERE v.id = $1"), id)
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	defer rows.Close()

	out, err := scanVehicles(rows)
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	if len(out) == 0 {
		return vehicle.Vehicle{}, vehicle.ErrNotFound
	}
	return out[0], nil
}

func (g *PgVehicleRepository) ExistingRegistrationNos(ctx context.Context) (map[string]struct{}, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, vehicleRegistrationNosQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var regNo string
		if err := rows.Scan(&regNo); err != nil {
			return nil, err
		}
		out[strings.ToUpper(regNo)] = struct{}{}
	}
	return out, rows.Err()
}

func (g *PgVehicleRepository) Create(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return vehicle.Vehicle{}, err
	}

	rows, err := tx.Query(
		ctx,
		vehicleInsertQuery,
		v.RegistrationNo(),
		v.Make(),
		v.Model(),
		v.Year(),
		v.ChassisNo(),
		v.EngineNo(),
		v.SeatingCapacity(),
		v.CubicCapacity(),
		v.GrossWeight(),
		v.ReceivedAt(),
		v.ClientID(),
		v.BodyTypeID(),
		v.CategoryID(),
		v.VehicleTypeID(),
		v.IsActive(),
		v.CreatedBy(),
		v.UpdatedBy(),
	)
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	defer rows.Close()

	out, err := scanVehicles(rows)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return vehicle.Vehicle{}, vehicle.ErrRegistrationTaken
		}
		return vehicle.Vehicle{}, err
	}
	if len(out) == 0 {
		return vehicle.Vehicle{}, errors.New("insert returned no row")
	}
	return out[0], nil
}

func scanVehicles(rows pgx.Rows) ([]vehicle.Vehicle, error) {
	var out []vehicle.Vehicle
	for rows.Next() {
		var m models.Vehicle
		if err := rows.Scan(
			&m.ID,
			&m.RegistrationNo,
			&m.Make,
			&m.Model,
			&m.Year,
			&m.ChassisNo,
			&m.EngineNo,
			&m.SeatingCapacity,
			&m.CubicCapacity,
			&m.GrossWeight,
			&m.ReceivedAt,
			&m.ClientID,
			&m.BodyTypeID,
			&m.CategoryID,
			&m.VehicleTypeID,
			&m.IsActive,
			&m.CreatedBy,
			&m.UpdatedBy,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		v, err := toDomainVehicle(m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
