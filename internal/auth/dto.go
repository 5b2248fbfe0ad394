package auth

import (
	"strings"

	errors "github.com/frahmantamala/attendance-tracker/internal"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var errLoginFieldsRequired = errors.NewValidationError("Email and password are required.", errors.ErrCodeValidationFailed)

func (d LoginDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" || d.Password == "" {
		return errLoginFieldsRequired
	}
	return nil
}

type LoginUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

func NewLoginResponse(res *LoginResult) LoginResponse {
	return LoginResponse{
		Token: res.Token,
		User: LoginUser{
			ID:    res.User.ID,
			Name:  res.User.Name,
			Email: res.User.Email,
			Role:  res.User.Role.String(),
		},
	}
}
