package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	"github.com/frahmantamala/attendance-tracker/internal/core/daybucket"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Repository lookups return nil, nil when the row does not exist.
type Repository interface {
	// Create reports false when the email is already taken.
	Create(ctx context.Context, u *coreuser.User) (bool, error)
	GetByID(ctx context.Context, id int64) (*coreuser.User, error)
	GetByEmail(ctx context.Context, email string) (*coreuser.User, error)
	List(ctx context.Context) ([]*coreuser.User, error)
	// Update reports false when the row no longer exists.
	Update(ctx context.Context, u *coreuser.User) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, dto CreateDTO) (*coreuser.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrEmailExists
	}

	joinDate, err := s.joinDate(dto.JoinDate)
	if err != nil {
		return nil, err
	}

	salary := decimal.Zero
	if parsed, _ := parseSalary(dto.Salary); parsed != nil {
		salary = *parsed
	}

	role := coreuser.RoleEmployee
	if dto.Role != "" {
		role = coreuser.Role(dto.Role)
	}

	isActive := true
	if dto.IsActive != nil {
		isActive = *dto.IsActive
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &coreuser.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         role,
		Salary:       salary,
		JoinDate:     joinDate,
		IsActive:     isActive,
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		s.logger.Error("failed to create employee", "email", dto.Email, "error", err)
		return nil, fmt.Errorf("create employee: %w", err)
	}
	if !created {
		return nil, errors.ErrEmailExists
	}

	s.logger.Info("employee created", "employee_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]*coreuser.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return users, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateDTO) (*coreuser.User, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidEmployeeID
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if u == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	if dto.Email != nil && *dto.Email != u.Email {
		owner, err := s.repo.GetByEmail(ctx, *dto.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if owner != nil && owner.ID != id {
			return nil, errors.ErrEmailExists
		}
		u.Email = *dto.Email
	}

	if dto.JoinDate != nil {
		joinDate, err := s.joinDate(*dto.JoinDate)
		if err != nil {
			return nil, err
		}
		u.JoinDate = joinDate
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Role != nil && *dto.Role != "" {
		u.Role = coreuser.Role(*dto.Role)
	}
	if parsed, _ := parseSalary(dto.Salary); parsed != nil {
		u.Salary = *parsed
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	if dto.Password != nil {
		hash, err := auth.HashPassword(*dto.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, u)
	if appErr, ok := errors.IsAppError(err); ok {
		return nil, appErr
	}
	if err != nil {
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return nil, fmt.Errorf("update employee: %w", err)
	}
	if !updated {
		return nil, errors.ErrEmployeeNotFound
	}

	s.logger.Info("employee updated", "employee_id", id)
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.ErrInvalidEmployeeID
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete employee", "employee_id", id, "error", err)
		return fmt.Errorf("delete employee: %w", err)
	}
	if !deleted {
		return errors.ErrEmployeeNotFound
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// joinDate defaults an empty value to today.
func (s *Service) joinDate(value string) (time.Time, error) {
	if value == "" {
		return daybucket.Today(s.now), nil
	}
	day, err := daybucket.ParseDay(value)
	if err != nil {
		return time.Time{}, errors.ErrInvalidJoinDate
	}
	return day, nil
}
