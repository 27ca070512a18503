package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/aggregates/policy"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/infrastructure/persistence/models"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/repo"
)

const (
	policyFindQuery = `
        SELECT
            p.id,
            p.policy_no,
            p.vehicle_id,
            p.insurer_id,
            p.premium,
            p.start_date,
            p.end_date,
            p.status,
            p.created_by,
            p.updated_by,
            p.created_at,
            p.updated_at
        FROM policies p`

	policyCountQuery = `SELECT COUNT(p.id) FROM policies p`

	policyInsertQuery = `
        INSERT INTO policies (policy_no, vehicle_id, insurer_id, premium, start_date, end_date, status, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING
            id, policy_no, vehicle_id, insurer_id, premium, start_date, end_date,
            status, created_by, updated_by, created_at, updated_at`
)

type PgPolicyRepository struct{}

func NewPolicyRepository() policy.Repository {
	return &PgPolicyRepository{}
}

func (g *PgPolicyRepository) GetPaginated(ctx context.Context, params *policy.FindParams) ([]policy.Policy, int64, error) {
	if params == nil {
		params = &policy.FindParams{}
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
	if params.VehicleID != uuid.Nil {
		args = append(args, params.VehicleID)
		where = append(where, "p.vehicle_id = $1")
	}

	query := repo.Join(
		policyFindQuery,
		repo.JoinWhere(where...),
		"ORDER BY p.created_at DESC",
		repo.FormatLimitOffset(limit, offset),
	)
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanPolicies(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := repo.Join(policyCountQuery, repo.JoinWhere(where...))
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (g *PgPolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (policy.Policy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return policy.Policy{}, err
	}

	rows, err := tx.Query(ctx, repo.Join(policyFindQuery, "WHERE p.id = $1"), id)
	if err != nil {
		return policy.Policy{}, err
	}
	defer rows.Close()

	out, err := scanPolicies(rows)
	if err != nil {
		return policy.Policy{}, err
	}
	if len(out) == 0 {
		return policy.Policy{}, policy.ErrNotFound
	}
	return out[0], nil
}

func (g *PgPolicyRepository) Create(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return policy.Policy{}, err
	}

	rows, err := tx.Query(
		ctx,
		policyInsertQuery,
		p.PolicyNo(),
		p.VehicleID(),
		p.InsurerID(),
		p.Premium(),
		p.StartDate(),
		p.EndDate(),
		string(p.Status()),
		p.CreatedBy(),
		p.UpdatedBy(),
	)
	if err != nil {
		return policy.Policy{}, err
	}
	defer rows.Close()

	out, err := scanPolicies(rows)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return policy.Policy{}, policy.ErrPolicyNoTaken
		}
		return policy.Policy{}, err
	}
	if len(out) == 0 {
		return policy.Policy{}, errors.New("insert returned no row")
	}
	return out[0], nil
}

func scanPolicies(rows pgx.Rows) ([]policy.Policy, error) {
	var out []policy.Policy
	for rows.Next() {
		var m models.Policy
		if err := rows.Scan(
			&m.ID,
			&m.PolicyNo,
			&m.VehicleID,
			&m.InsurerID,
			&m.Premium,
			&m.StartDate,
			&m.EndDate,
			&m.Status,
			&m.CreatedBy,
			&m.UpdatedBy,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p, err := toDomainPolicy(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
