package common

const (
	// AuthorizationHeaderName carries the session token as "Bearer <token>".
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"
)
