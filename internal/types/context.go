package types

import "context"

type ContextKey string

const (
	CtxUserID        ContextKey = "ctx_user_id"
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxDBTransaction ContextKey = "ctx_db_transaction"
)

const (
	// DefaultUserID is used when no authenticated user is present in the
	// context, for example in scripts and tests.
	DefaultUserID = "00000000-0000-0000-0000-000000000000"
)

// GetUserID returns the authenticated user id from the context, or an empty
// string when the request is unauthenticated.
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}
