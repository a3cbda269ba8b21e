package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/samytrends/retail-api/internal/modules/user"
)

// Demo terminal accounts. Their roles are fixed regardless of what the user
// record says, mirroring the storefront's seeded logins.
var demoRoles = map[string]user.Role{
	"admin@samytrends.com":   user.RoleAdmin,
	"cashier@samytrends.com": user.RoleCashier,
}

type service struct {
	userRepo user.Repository
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, secret string, tokenTTL time.Duration) Service {
	return &service{userRepo: userRepo, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	role := u.Role
	if demo, ok := demoRoles[u.Email]; ok {
		role = demo
	}

	claims := &Claims{
		Role: string(role),
		Name: u.Name,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Session{Token: signed, User: u, Role: role}, nil
}

func (s *service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
