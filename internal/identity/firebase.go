package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// FirebaseVerifier verifies Firebase ID tokens using the Admin SDK
type FirebaseVerifier struct {
	authClient *auth.Client
}

// NewFirebaseVerifier creates a new FirebaseVerifier
func NewFirebaseVerifier(authClient *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{authClient: authClient}
}

// Verify validates the ID token and extracts the principal's uid and
// display fields from its claims
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := v.authClient.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired ID token: %w", err)
	}

	id := &Identity{UID: decoded.UID}
	if name, ok := decoded.Claims["name"].(string); ok {
		id.Name = name
	}
	if picture, ok := decoded.Claims["picture"].(string); ok {
		id.AvatarURL = picture
	}
	if email, ok := decoded.Claims["email"].(string); ok && id.Name == "" {
		id.Name = email
	}
	return id, nil
}
