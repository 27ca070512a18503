package reference

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/pkg/constants"
	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
)

type CreateDTO struct {
	Kind      string `json:"kind" validate:"required,oneof=body_type vehicle_category vehicle_type sticker_type"`
	Name      string `json:"name" validate:"required,max=255"`
	IsDefault bool   `json:"is_default"`
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Kind = strings.ToLower(strings.TrimSpace(d.Kind))
	d.Name = strings.TrimSpace(d.Name)

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity(createdBy uuid.UUID) Value {
	return New(Kind(d.Kind), d.Name, d.IsDefault, createdBy)
}

type UpdateDTO struct {
	Name      string `json:"name" validate:"required,max=255"`
	IsDefault bool   `json:"is_default"`
	IsActive  bool   `json:"is_active"`
}

func (d *UpdateDTO) Ok() (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *UpdateDTO) ToValues() UpdateValues {
	return UpdateValues{
		Name:      d.Name,
		IsDefault: d.IsDefault,
		IsActive:  d.IsActive,
	}
}
