package policy

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetgrid/fleet-sdk/pkg/constants"
	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
)

type CreateDTO struct {
	PolicyNo  string `json:"policy_no" validate:"required,max=64"`
	VehicleID string `json:"vehicle_id" validate:"required,uuid"`
	InsurerID string `json:"insurer_id" validate:"required,uuid"`
	Premium   string `json:"premium" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.PolicyNo = strings.TrimSpace(d.PolicyNo)
	d.Premium = strings.TrimSpace(d.Premium)

	errs := constants.Validate.Struct(d)
	if errs != nil {
		return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
	}

	premium, err := decimal.NewFromString(d.Premium)
	if err != nil || premium.IsNegative() || premium.IsZero() {
		return map[string]string{"Premium": "Premium must be a positive amount"}, false
	}
	start, _ := time.Parse("2006-01-02", d.StartDate)
	end, _ := time.Parse("2006-01-02", d.EndDate)
	if !end.After(start) {
		return map[string]string{"EndDate": "EndDate must be after StartDate"}, false
	}
	return map[string]string{}, true
}

func (d *CreateDTO) ToEntity(actor uuid.UUID) Policy {
	premium, _ := decimal.NewFromString(d.Premium)
	start, _ := time.Parse("2006-01-02", d.StartDate)
	end, _ := time.Parse("2006-01-02", d.EndDate)
	return New(
		d.PolicyNo,
		uuid.MustParse(d.VehicleID),
		uuid.MustParse(d.InsurerID),
		premium,
		start,
		end,
		actor,
	)
}
