package employee

import (
	"encoding/json"
	stderrors "errors"
	"strings"

	errors "github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/core/common/validation"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/shopspring/decimal"
)

var (
	errSalaryNotNumber = stderrors.New("salary is not a number")
	errSalaryNegative  = stderrors.New("salary is negative")
)

var tagMessages = map[string]string{
	"email": "Email is invalid.",
}

type CreateDTO struct {
	Name     string          `json:"name"`
	Email    string          `json:"email" validate:"omitempty,email"`
	Password string          `json:"password"`
	Role     string          `json:"role"`
	Salary   json.RawMessage `json:"salary,omitempty"`
	JoinDate string          `json:"joinDate"`
	IsActive *bool           `json:"isActive,omitempty"`
}

func (dto *CreateDTO) Validate() error {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = strings.TrimSpace(dto.Email)

	v := validation.NewValidator()
	v.Field("name", dto.Name).Required("Name is required.")
	v.Field("email", dto.Email).Required("Email is required.")
	v.Field("password", dto.Password).Required("Password is required.")
	v.Field("role", dto.Role).OneOf("Role must be ADMIN or EMPLOYEE.", errors.ErrCodeInvalidRole,
		coreuser.RoleAdmin.String(), coreuser.RoleEmployee.String())
	v.Field("salary", dto.Salary).Custom(validateSalary)
	v.Tags(dto, tagMessages)

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// UpdateDTO is a partial update: nil fields are left unchanged. Empty strings
// for name, email, password and joinDate are treated as absent.
type UpdateDTO struct {
	Name     *string         `json:"name,omitempty"`
	Email    *string         `json:"email,omitempty" validate:"omitempty,email"`
	Password *string         `json:"password,omitempty"`
	Role     *string         `json:"role,omitempty"`
	Salary   json.RawMessage `json:"salary,omitempty"`
	JoinDate *string         `json:"joinDate,omitempty"`
	IsActive *bool           `json:"isActive,omitempty"`
}

func (dto *UpdateDTO) Validate() error {
	dto.Name = blankToNil(dto.Name)
	dto.Email = blankToNil(dto.Email)
	dto.Password = blankToNil(dto.Password)

	v := validation.NewValidator()
	v.Field("role", dto.Role).OneOf("Role must be ADMIN or EMPLOYEE.", errors.ErrCodeInvalidRole,
		coreuser.RoleAdmin.String(), coreuser.RoleEmployee.String())
	v.Field("salary", dto.Salary).Custom(validateSalary)
	v.Tags(dto, tagMessages)

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateSalary(value interface{}) *errors.AppError {
	raw, _ := value.(json.RawMessage)
	_, err := parseSalary(raw)
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, errSalaryNegative):
		return errors.NewValidationFieldError("salary", "Salary must not be negative.", errors.ErrCodeInvalidSalary)
	default:
		return errors.NewValidationFieldError("salary", "Salary must be a number.", errors.ErrCodeInvalidSalary)
	}
}

// parseSalary accepts a JSON number or a numeric string. A missing or null
// salary yields nil.
func parseSalary(raw json.RawMessage) (*decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil, nil
	}

	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errSalaryNotNumber
		}
		text = strings.TrimSpace(s)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, errSalaryNotNumber
	}
	if d.IsNegative() {
		return nil, errSalaryNegative
	}
	d = d.Round(2)
	return &d, nil
}
