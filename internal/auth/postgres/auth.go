package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/attendance-tracker/internal/auth"
	userDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.UserRepository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*coreuser.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*coreuser.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) first(ctx context.Context, query string, arg interface{}) (*coreuser.User, error) {
	var row userDatamodel.User
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

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
	}, nil
}
