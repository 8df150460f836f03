package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// User is the authenticated caller as seen by handlers and middleware.
type User struct {
	ID                    string  `json:"id"`
	Email                 string  `json:"email"`
	Name                  string  `json:"name"`
	PlatformRole          string  `json:"platformRole"`
	CurrentOrganizationID *string `json:"currentOrganizationId,omitempty"`
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// UserRecord is the raw identity row the repository returns; ban evaluation
// happens in the service, not the adapter.
type UserRecord struct {
	ID                    string
	Email                 string
	Name                  string
	PlatformRole          string
	Banned                bool
	BanExpires            *time.Time
	CurrentOrganizationID *string
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGeneratorAPI creates and validates tokens.
type TokenGeneratorAPI interface {
	GenerateAccessToken(userID, email string) (token string, err error)
	GenerateRefreshToken(userID, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// RepositoryAPI answers the point queries authentication needs.
type RepositoryAPI interface {
	GetCredentialsByEmail(email string) (userID, passwordHash string, err error)
	GetUserByID(userID string) (*UserRecord, error)
}

// ServiceAPI performs authentication-related business logic.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(userID string) (*User, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserBanned         = errors.New("user is banned")
	ErrUserNotFound       = errors.New("user not found")
)
