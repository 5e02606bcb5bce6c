// Package identity verifies bearer tokens issued by the external identity
// provider. Token issuance lives entirely with the provider; this package
// only validates signatures against the provider's JWKS and extracts the
// subject that becomes the caller identity.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified caller, used as the ownership key for all
// per-user scoping.
type Identity struct {
	Subject string
}

type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// JWKSVerifier validates RS256 tokens against the provider's JWKS endpoint,
// refreshing keys in the background.
type JWKSVerifier struct {
	keys   keyfunc.Keyfunc
	leeway time.Duration
	issuer string
}

type JWKSConfig struct {
	URL             string
	RefreshInterval time.Duration
	Leeway          time.Duration
	Issuer          string // Optional: enforced when non-empty
}

func NewJWKSVerifier(cfg JWKSConfig) (*JWKSVerifier, error) {
	// NoErrorReturnFirstHTTPReq lets the process start even when the
	// provider is briefly unreachable.
	storage, err := jwkset.NewStorageFromHTTP(cfg.URL, jwkset.HTTPClientStorageOptions{
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           cfg.RefreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			slog.Error("jwks refresh failed", "error", err, "url", cfg.URL)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create jwks storage: %w", err)
	}

	keys, err := keyfunc.New(keyfunc.Options{Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("failed to create keyfunc: %w", err)
	}

	return &JWKSVerifier{
		keys:   keys,
		leeway: cfg.Leeway,
		issuer: cfg.Issuer,
	}, nil
}

func (v *JWKSVerifier) Verify(ctx context.Context, tokenString string) (Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keys.KeyfuncCtx(ctx), opts...)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{Subject: subject}, nil
}
