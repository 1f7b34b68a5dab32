package auth

import (
	"context"

	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/types"
)

// Claims holds the identity extracted from a verified bearer token.
type Claims struct {
	UserID string
	Email  string
	Name   string
}

// Provider verifies bearer tokens issued by the configured identity provider.
type Provider interface {
	GetProvider() types.AuthProvider
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	switch cfg.Auth.Provider {
	case types.AuthProviderSupabase:
		return NewSupabaseAuth(cfg)
	default:
		return NewJWTAuth(cfg)
	}
}
