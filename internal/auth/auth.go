package auth

import (
	"context"
	"time"

	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/golang-jwt/jwt/v5"
)

// UserRepository loads the users that can authenticate. Both methods return
// nil, nil when the user does not exist.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*coreuser.User, error)
	GetByID(ctx context.Context, id int64) (*coreuser.User, error)
}

// TokenGenerator issues and verifies access tokens.
type TokenGenerator interface {
	GenerateAccessToken(u *coreuser.User) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// TokenStore tracks revoked access tokens by their jti.
type TokenStore interface {
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// Claims represents JWT token claims
type Claims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *coreuser.User
}
