package gorm

import (
	"context"
	"errors"

	domainUser "github.com/learnhub/learnhub/internal/domain/user"
	ierr "github.com/learnhub/learnhub/internal/errors"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewUserRepository(client postgres.IClient, log *logger.Logger) domainUser.Repository {
	return &userRepository{
		client: client,
		log:    log,
	}
}

func (r *userRepository) Get(ctx context.Context, id string) (*domainUser.User, error) {
	var u domainUser.User
	err := r.client.Querier(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("user not found").
				WithHintf("User %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}

	return &u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]*domainUser.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []*domainUser.User
	err := r.client.Querier(ctx).
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get users").
			Mark(ierr.ErrDatabase)
	}

	return users, nil
}

// Upsert mirrors an identity provider record into the local users table.
func (r *userRepository) Upsert(ctx context.Context, u *domainUser.User) error {
	err := r.client.Querier(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "updated_at"}),
		}).
		Create(u).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to upsert user").
			Mark(ierr.ErrDatabase)
	}

	return nil
}
