package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

type User struct {
	id        uuid.UUID
	email     string
	fullName  string
	role      Role
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func New(email, fullName string, role Role) User {
	return User{
		email:    strings.ToLower(strings.TrimSpace(email)),
		fullName: strings.TrimSpace(fullName),
		role:     role,
		isActive: true,
	}
}

func Hydrate(
	id uuid.UUID,
	email string,
	fullName string,
	role Role,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) User {
	return User{
		id:        id,
		email:     strings.ToLower(strings.TrimSpace(email)),
		fullName:  strings.TrimSpace(fullName),
		role:      role,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u User) ID() uuid.UUID        { return u.id }
func (u User) Email() string        { return u.email }
func (u User) FullName() string     { return u.fullName }
func (u User) Role() Role           { return u.role }
func (u User) IsActive() bool       { return u.isActive }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }
func (u User) IsZero() bool         { return u.id == uuid.Nil && u.email == "" }
