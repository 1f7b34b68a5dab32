package service

import (
	"context"
	"time"

	"github.com/learnhub/learnhub/internal/auth"
	"github.com/learnhub/learnhub/internal/domain/user"
)

// UserService mirrors identity provider records into the local users table so
// usage history can be enriched without calling the provider.
type UserService interface {
	SyncFromClaims(ctx context.Context, claims *auth.Claims) error
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{
		ServiceParams: params,
	}
}

func (s *userService) SyncFromClaims(ctx context.Context, claims *auth.Claims) error {
	now := time.Now().UTC()
	return s.UserRepo.Upsert(ctx, &user.User{
		ID:        claims.UserID,
		Name:      claims.Name,
		Email:     claims.Email,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
