package insurer

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/pkg/constants"
	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewError("INSURER_NOT_FOUND", "insurer not found")

type Insurer struct {
	id        uuid.UUID
	name      string
	isActive  bool
	createdBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(name string, createdBy uuid.UUID) Insurer {
	return Insurer{
		name:      strings.TrimSpace(name),
		isActive:  true,
		createdBy: createdBy,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	isActive bool,
	createdBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Insurer {
	return Insurer{
		id:        id,
		name:      name,
		isActive:  isActive,
		createdBy: createdBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (i Insurer) ID() uuid.UUID        { return i.id }
func (i Insurer) Name() string         { return i.name }
func (i Insurer) IsActive() bool       { return i.isActive }
func (i Insurer) CreatedBy() uuid.UUID { return i.createdBy }
func (i Insurer) CreatedAt() time.Time { return i.createdAt }
func (i Insurer) UpdatedAt() time.Time { return i.updatedAt }

type Repository interface {
	GetAll(ctx context.Context) ([]Insurer, error)
	GetByID(ctx context.Context, id uuid.UUID) (Insurer, error)
	Create(ctx context.Context, i Insurer) (Insurer, error)
}

type CreateDTO struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity(createdBy uuid.UUID) Insurer {
	return New(d.Name, createdBy)
}
