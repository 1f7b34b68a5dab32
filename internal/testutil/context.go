package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnhub/learnhub/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, uuid.New().String())
	return ctx
}
