package models

import "time"

type Reference struct {
	ID        string
	Kind      string
	Name      string
	IsDefault bool
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Vehicle struct {
	ID              string
	RegistrationNo  string
	Make            string
	Model           string
	Year            int
	ChassisNo       string
	EngineNo        string
	SeatingCapacity *int
	CubicCapacity   *int
	GrossWeight     *float64
	ReceivedAt      *time.Time
	ClientID        string
	BodyTypeID      string
	CategoryID      string
	VehicleTypeID   string
	IsActive        bool
	CreatedBy       string
	UpdatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
