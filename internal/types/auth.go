package types

// AuthProvider identifies the identity provider used to verify bearer tokens.
type AuthProvider string

const (
	// AuthProviderSupabase verifies tokens against a Supabase project.
	AuthProviderSupabase AuthProvider = "supabase"
	// AuthProviderJWT verifies HS256 tokens signed with a shared secret.
	AuthProviderJWT AuthProvider = "jwt"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)
