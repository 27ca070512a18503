package client

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	id        uuid.UUID
	name      string
	email     string
	phone     string
	isActive  bool
	createdBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(name, email, phone string, createdBy uuid.UUID) Client {
	return Client{
		name:      strings.TrimSpace(name),
		email:     strings.ToLower(strings.TrimSpace(email)),
		phone:     strings.TrimSpace(phone),
		isActive:  true,
		createdBy: createdBy,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	email string,
	phone string,
	isActive bool,
	createdBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Client {
	return Client{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		isActive:  isActive,
		createdBy: createdBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c Client) ID() uuid.UUID        { return c.id }
func (c Client) Name() string         { return c.name }
func (c Client) Email() string        { return c.email }
func (c Client) Phone() string        { return c.phone }
func (c Client) IsActive() bool       { return c.isActive }
func (c Client) CreatedBy() uuid.UUID { return c.createdBy }
func (c Client) CreatedAt() time.Time { return c.createdAt }
func (c Client) UpdatedAt() time.Time { return c.updatedAt }
