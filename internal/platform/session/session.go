package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles recognized by the platform.
const (
	RolePublic       = "public"
	RoleCounselor    = "counselor"
	RolePsychiatrist = "psychiatrist"
	RoleAdmin        = "admin"
)

// Actor is the authenticated caller attached to a request.
type Actor struct {
	UserID   string `json:"user_id"`
	PublicID string `json:"public_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// IsStaff reports whether the actor holds a care-team role.
func (a Actor) IsStaff() bool {
	switch a.Role {
	case RoleCounselor, RolePsychiatrist, RoleAdmin:
		return true
	}
	return false
}

type Claims struct {
	jwt.RegisteredClaims
	PublicID string `json:"public_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Sign mints an HS256 token for the given actor.
func Sign(actor Actor, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		PublicID: actor.PublicID,
		Name:     actor.Name,
		Role:     actor.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates an HS256 token and returns the actor it carries.
func Parse(tokenStr string, secret []byte) (Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Actor{}, fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid {
		return Actor{}, fmt.Errorf("invalid session token")
	}

	return Actor{
		UserID:   claims.Subject,
		PublicID: claims.PublicID,
		Name:     claims.Name,
		Role:     claims.Role,
	}, nil
}

type contextKey string

const actorKey contextKey = "session_actor"

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// FromContext returns the actor attached to the context, if any.
func FromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}
