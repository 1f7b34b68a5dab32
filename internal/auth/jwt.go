package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/types"
)

// jwtAuth verifies HS256 tokens signed with a shared secret. Used for local
// development and for deployments without a hosted identity provider.
type jwtAuth struct {
	AuthConfig config.AuthConfig
}

func NewJWTAuth(cfg *config.Configuration) Provider {
	return &jwtAuth{
		AuthConfig: cfg.Auth,
	}
}

func (j *jwtAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderJWT
}

func (j *jwtAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.AuthConfig.Secret), nil
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
	if name, ok := claims["name"].(string); ok {
		result.Name = name
	}

	return result, nil
}

// GenerateToken signs a short lived HS256 token. Exposed for tests and local
// tooling.
func (j *jwtAuth) GenerateToken(userID, email, name string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"name":  name,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(j.AuthConfig.Secret))
}
