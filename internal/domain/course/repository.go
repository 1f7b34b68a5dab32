package course

import "context"

// Repository defines read access to the course catalog.
type Repository interface {
	Get(ctx context.Context, id int) (*Course, error)
	List(ctx context.Context) ([]*Course, error)
}
