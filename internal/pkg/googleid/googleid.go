// Package googleid verifies Google-issued ID tokens for social sign-in.
package googleid

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// ErrInvalidToken is returned when the token fails signature, audience
// or expiry checks.
var ErrInvalidToken = errors.New("invalid google id token")

// Claims is the subset of the ID token payload the app cares about.
type Claims struct {
	// Subject is Google's stable account identifier.
	Subject string
	// Email is the account's email address.
	Email string
	// FullName is the account's display name.
	FullName string
	// EmailVerified reports whether Google verified the mailbox.
	EmailVerified bool
}

// Verifier checks a raw ID token and extracts its claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// IDTokenVerifier validates tokens against Google's published signing
// keys and the configured OAuth client id.
type IDTokenVerifier struct {
	clientID string
}

func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	str := func(key string) string {
		s, _ := payload.Claims[key].(string)
		return s
	}
	verified, _ := payload.Claims["email_verified"].(bool)

	return &Claims{
		Subject:       payload.Subject,
		Email:         str("email"),
		FullName:      str("name"),
		EmailVerified: verified,
	}, nil
}
