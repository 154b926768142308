package types

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderAdminKey      = "x-admin-key"
)
