// Package identity is the boundary to the external identity provider. The
// server never issues credentials itself; it only verifies bearer tokens and
// resolves them to an opaque external uid plus display fields.
package identity

import "context"

// Identity is the verified external principal of a request
type Identity struct {
	UID       string
	Name      string
	Username  string
	AvatarURL string
}

// DisplayName picks the best available display name, falling back like the
// upstream provider does (full name, then handle, then "Unknown").
func (id *Identity) DisplayName() string {
	if id.Name != "" {
		return id.Name
	}
	if id.Username != "" {
		return id.Username
	}
	return "Unknown"
}

// Verifier verifies a bearer token and resolves the principal behind it
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
