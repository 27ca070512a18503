package vehicle

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/pkg/constants"
	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
)

type CreateDTO struct {
	RegistrationNo  string   `json:"registration_no" validate:"required,max=64"`
	Make            string   `json:"make" validate:"required,max=255"`
	Model           string   `json:"model" validate:"required,max=255"`
	Year            int      `json:"year" validate:"required,min=1900"`
	ChassisNo       string   `json:"chassis_no" validate:"required,max=128"`
	EngineNo        string   `json:"engine_no" validate:"required,max=128"`
	SeatingCapacity *int     `json:"seating_capacity" validate:"omitempty,min=1"`
	CubicCapacity   *int     `json:"cubic_capacity" validate:"omitempty,min=1"`
	GrossWeight     *float64 `json:"gross_weight" validate:"omitempty,gt=0"`
	ReceivedAt      string   `json:"received_at" validate:"omitempty,datetime=2006-01-02"`
	ClientID        string   `json:"client_id" validate:"required,uuid"`
	BodyTypeID      string   `json:"body_type_id" validate:"required,uuid"`
	CategoryID      string   `json:"category_id" validate:"required,uuid"`
	VehicleTypeID   string   `json:"vehicle_type_id" validate:"required,uuid"`
}

func (d *CreateDTO) Ok(now time.Time) (map[string]string, bool) {
	d.RegistrationNo = strings.TrimSpace(d.RegistrationNo)
	d.Make = strings.TrimSpace(d.Make)
	d.Model = strings.TrimSpace(d.Model)
	d.ChassisNo = strings.TrimSpace(d.ChassisNo)
	d.EngineNo = strings.TrimSpace(d.EngineNo)

	errs := constants.Validate.Struct(d)
	if errs != nil {
		return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
	}
	if d.Year > now.Year()+1 {
		return map[string]string{"Year": "Year is invalid"}, false
	}
	return map[string]string{}, true
}

func (d *CreateDTO) ToEntity(actor uuid.UUID) Vehicle {
	opts := Options{
		SeatingCapacity: d.SeatingCapacity,
		CubicCapacity:   d.CubicCapacity,
		GrossWeight:     d.GrossWeight,
	}
	if d.ReceivedAt != "" {
		if t, err := time.Parse("2006-01-02", d.ReceivedAt); err == nil {
			opts.ReceivedAt = &t
		}
	}
	return New(
		d.RegistrationNo,
		d.Make,
		d.Model,
		d.Year,
		d.ChassisNo,
		d.EngineNo,
		uuid.MustParse(d.ClientID),
		uuid.MustParse(d.BodyTypeID),
		uuid.MustParse(d.CategoryID),
		uuid.MustParse(d.VehicleTypeID),
		actor,
		opts,
	)
}
