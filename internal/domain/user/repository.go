package user

import "context"

// Repository defines access to the mirrored user records.
type Repository interface {
	Get(ctx context.Context, id string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
	Upsert(ctx context.Context, u *User) error
}
