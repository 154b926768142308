package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/bohselecta/luvler-metering/internal/config"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
)

// Claims is the caller identity extracted from a validated token.
// OrgID is empty for users who do not belong to an organization.
type Claims struct {
	UserID string
	OrgID  string
}

// Provider validates caller tokens issued by the product's auth frontend
type Provider interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
	GenerateToken(userID, orgID string, ttl time.Duration) (string, error)
}

type jwtAuth struct {
	authConfig config.AuthConfig
}

// NewProvider creates the HMAC JWT provider
func NewProvider(cfg *config.Configuration) Provider {
	return &jwtAuth{
		authConfig: cfg.Auth,
	}
}

type tokenClaims struct {
	OrgID string `json:"org_id,omitempty"`
	jwt.RegisteredClaims
}

func (a *jwtAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewErrorf("unexpected signing method: %v", t.Header["alg"]).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(a.authConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid token").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token").
			Mark(ierr.ErrPermissionDenied)
	}

	return &Claims{
		UserID: claims.Subject,
		OrgID:  claims.OrgID,
	}, nil
}

func (a *jwtAuth) GenerateToken(userID, orgID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		OrgID: orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(a.authConfig.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}
	return token, nil
}
