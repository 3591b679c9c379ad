package auth

// Role values carried by tokens and keys.
const (
	RoleAdmin  = "ADMIN"
	RoleViewer = "VIEWER"
)

// UserClaims is the identity attached to an authenticated request,
// whether it arrived with a JWT or a provisioned API key.
type UserClaims interface {
	Subject() string
	Role() string
	Source() string
	CanAdminister() bool
}

type JWTClaims struct {
	SubjectID string
	RoleValue string
}

func (c *JWTClaims) Subject() string { return c.SubjectID }
func (c *JWTClaims) Role() string    { return c.RoleValue }
func (c *JWTClaims) Source() string  { return "JWT" }
func (c *JWTClaims) CanAdminister() bool {
	return c.RoleValue == RoleAdmin
}

// APIKeyClaims represents a request authenticated with a provisioned
// key. Keys are only handed to operators, so they carry admin rights.
type APIKeyClaims struct {
	Key string
}

func (c *APIKeyClaims) Subject() string { return "api-key" }
func (c *APIKeyClaims) Role() string    { return RoleAdmin }
func (c *APIKeyClaims) Source() string  { return "API_KEY" }
func (c *APIKeyClaims) CanAdminister() bool {
	return true
}
