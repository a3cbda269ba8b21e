package auth

import (
	"context"

	"github.com/dgrijalva/jwt-go"

	"github.com/samytrends/retail-api/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	// ParseToken validates a signed token and returns its claims.
	ParseToken(token string) (*Claims, error)
}

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.StandardClaims
}

// Session is the login result handed to the client.
type Session struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
	Role  user.Role  `json:"role"`
}
