package employee

import (
	"time"

	userDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
)

// Response is the public shape of an employee. The password hash never leaves
// the service.
type Response struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Salary    float64   `json:"salary"`
	JoinDate  time.Time `json:"joinDate"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewResponse(u *coreuser.User) Response {
	return Response{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		Salary:    u.Salary.InexactFloat64(),
		JoinDate:  u.JoinDate.UTC(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func NewListResponse(users []*coreuser.User) []Response {
	out := make([]Response, 0, len(users))
	for _, u := range users {
		out = append(out, NewResponse(u))
	}
	return out
}

func FromDataModel(row *userDatamodel.User) *coreuser.User {
	return &coreuser.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         coreuser.Role(row.Role),
		Salary:       row.Salary,
		JoinDate:     row.JoinDate,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func ToDataModel(u *coreuser.User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
		Salary:       u.Salary,
		JoinDate:     u.JoinDate,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
