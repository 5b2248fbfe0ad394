package postgres

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	apperrors "github.com/frahmantamala/attendance-tracker/internal"
	userDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/frahmantamala/attendance-tracker/internal/employee"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, u *coreuser.User) (bool, error) {
	row := employee.ToDataModel(u)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(row)
	if res.Error != nil {
		return false, fmt.Errorf("insert user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	u.ID = row.ID
	u.CreatedAt = row.CreatedAt
	u.UpdatedAt = row.UpdatedAt
	return true, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*coreuser.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*coreuser.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*coreuser.User, error) {
	var rows []userDatamodel.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*coreuser.User, 0, len(rows))
	for i := range rows {
		users = append(users, employee.FromDataModel(&rows[i]))
	}
	return users, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, u *coreuser.User) (bool, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":          u.Name,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"role":          u.Role.String(),
			"salary":        u.Salary,
			"join_date":     u.JoinDate,
			"is_active":     u.IsActive,
			"updated_at":    now,
		})
	if res.Error != nil {
		// email is the only unique column an update can collide on; needs TranslateError
		if stderrors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, apperrors.ErrEmailExists
		}
		return false, fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	u.UpdatedAt = now
	return true, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&userDatamodel.User{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *EmployeeRepository) first(ctx context.Context, query string, arg interface{}) (*coreuser.User, error) {
	var row userDatamodel.User
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&row).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return employee.FromDataModel(&row), nil
}
