package client

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/pkg/constants"
	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
)

type CreateDTO struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity(createdBy uuid.UUID) Client {
	return New(d.Name, d.Email, d.Phone, createdBy)
}
