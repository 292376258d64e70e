package authz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
)

// ErrInvalidToken is returned when an actor token cannot be verified.
var ErrInvalidToken = errors.New("invalid actor token")

// ActorClaims is the JWT payload identifying the acting user.
type ActorClaims struct {
	UserID int64    `json:"uid"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenParser verifies HS256 actor tokens and converts them to domain actors.
type TokenParser struct {
	secret []byte
	issuer string
}

// NewTokenParser creates a parser for tokens signed with secret. When issuer
// is non-empty the token's iss claim must match it.
func NewTokenParser(secret, issuer string) *TokenParser {
	return &TokenParser{secret: []byte(secret), issuer: issuer}
}

// Parse verifies raw and returns the actor it names. An empty token yields
// the guest actor. Any verification failure wraps ErrInvalidToken.
func (p *TokenParser) Parse(raw string) (domain.Actor, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return domain.Guest(), nil
	}
	if len(p.secret) == 0 {
		return domain.Actor{}, fmt.Errorf("%w: no signing secret configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	var claims ActorClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, opts...)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.UserID <= 0 {
		return domain.Actor{}, fmt.Errorf("%w: uid claim must be positive", ErrInvalidToken)
	}

	return domain.Actor{ID: claims.UserID, Name: claims.Name, Roles: claims.Roles}, nil
}

// Sign issues a token for actor. Used by tests and local tooling.
func (p *TokenParser) Sign(actor domain.Actor, claims jwt.RegisteredClaims) (string, error) {
	if claims.Issuer == "" {
		claims.Issuer = p.issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ActorClaims{
		UserID:           actor.ID,
		Name:             actor.Name,
		Roles:            actor.Roles,
		RegisteredClaims: claims,
	})
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("signing actor token: %w", err)
	}
	return signed, nil
}
