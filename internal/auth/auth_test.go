package auth

import (
	"context"
	"testing"

	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/types"
	supabase "github.com/nedpals/supabase-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Configuration {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Provider = types.AuthProviderJWT
	cfg.Auth.Secret = "test-secret"
	return cfg
}

func TestJWTProviderRoundTrip(t *testing.T) {
	provider := NewJWTAuth(testConfig())

	generator, ok := provider.(interface {
		GenerateToken(userID, email, name string) (string, error)
	})
	require.True(t, ok)

	token, err := generator.GenerateToken("user-1", "ada@example.com", "Ada Lovelace")
	require.NoError(t, err)

	claims, err := provider.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.Name)
}

func TestJWTProviderRejectsBadToken(t *testing.T) {
	provider := NewJWTAuth(testConfig())

	_, err := provider.ValidateToken(context.Background(), "not-a-token")
	assert.Error(t, err)

	otherCfg := testConfig()
	otherCfg.Auth.Secret = "some-other-secret"
	generator := NewJWTAuth(otherCfg).(interface {
		GenerateToken(userID, email, name string) (string, error)
	})
	token, err := generator.GenerateToken("user-1", "", "")
	require.NoError(t, err)

	_, err = provider.ValidateToken(context.Background(), token)
	assert.Error(t, err, "token signed with a different secret")
}

func TestApplyProviderProfile(t *testing.T) {
	claims := &Claims{
		UserID: "user-1",
		Email:  "stale@example.com",
		Name:   "Stale Name",
	}

	applyProviderProfile(claims, &supabase.User{
		Email: "current@example.com",
		UserMetadata: map[string]interface{}{
			"full_name": "Current Name",
		},
	})

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "current@example.com", claims.Email)
	assert.Equal(t, "Current Name", claims.Name)

	// A sparse provider record keeps what the claims carried
	applyProviderProfile(claims, &supabase.User{})
	assert.Equal(t, "current@example.com", claims.Email)
	assert.Equal(t, "Current Name", claims.Name)
}
