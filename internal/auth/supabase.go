package auth

import (
	"context"
	"fmt"
	"log"

	"github.com/golang-jwt/jwt/v4"
	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/types"
	"github.com/nedpals/supabase-go"
)

type supabaseAuth struct {
	AuthConfig config.AuthConfig
	client     *supabase.Client
}

func NewSupabaseAuth(cfg *config.Configuration) Provider {
	supabaseUrl := cfg.Auth.Supabase.BaseURL
	serviceKey := cfg.Auth.Supabase.ServiceKey

	client := supabase.CreateClient(supabaseUrl, serviceKey)
	if client == nil {
		log.Fatalf("failed to create Supabase client")
	}

	return &supabaseAuth{
		AuthConfig: cfg.Auth,
		client:     client,
	}
}

func (s *supabaseAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderSupabase
}

// ValidateToken verifies the token signature locally with the project's JWT
// secret, then asks Supabase for the user record behind the token. The local
// check is the gate, the provider lookup only fills in the profile.
func (s *supabaseAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parse error: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, userOk := claims["sub"].(string)
	if !userOk || userID == "" {
		return nil, fmt.Errorf("token missing user ID")
	}

	result := &Claims{UserID: userID}

	if email, ok := claims["email"].(string); ok {
		result.Email = email
	}
	if metadata, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if name, ok := metadata["full_name"].(string); ok {
			result.Name = name
		}
	}

	// Tokens can be minted before the profile settles, the provider record
	// is the current one. An unreachable provider degrades to claim data.
	if user, err := s.client.Auth.User(ctx, token); err == nil && user != nil {
		applyProviderProfile(result, user)
	}

	return result, nil
}

// applyProviderProfile overlays the identity provider's user record on the
// claim derived identity. Provider fields win when present.
func applyProviderProfile(c *Claims, u *supabase.User) {
	if u.Email != "" {
		c.Email = u.Email
	}
	if name, ok := u.UserMetadata["full_name"].(string); ok && name != "" {
		c.Name = name
	}
}
