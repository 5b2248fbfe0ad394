package user

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Role is closed: every switch over it handles both values.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

var ErrInvalidRole = errors.New("role must be ADMIN or EMPLOYEE")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleEmployee:
		return false
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Salary       decimal.Decimal
	JoinDate     time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
