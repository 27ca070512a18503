package user

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fleetgrid/fleet-sdk/pkg/constants"
	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
)

type CreateDTO struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin operator"`
}

func (d *CreateDTO) Normalize() {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.FullName = strings.TrimSpace(d.FullName)
	d.Role = strings.TrimSpace(d.Role)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity() User {
	return New(d.Email, d.FullName, Role(d.Role))
}
