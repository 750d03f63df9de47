package auth

import (
	"context"
	"errors"
	"trivia-api/internal/config"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Authenticator verifies bearer tokens issued by the configured OIDC provider.
type Authenticator struct {
	*oidc.Provider
	*oidc.IDTokenVerifier
}

// NewAuthenticator discovers the OIDC provider and builds a token verifier
// that checks signature, issuer, expiry and that the audience is cfg.ClientID.
func NewAuthenticator(ctx context.Context, cfg *config.AuthConfig) (*Authenticator, error) {
	if cfg.IssuerURL == "" {
		return nil, errors.New("auth issuer url is not configured")
	}
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, err
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	return &Authenticator{
		Provider:        provider,
		IDTokenVerifier: verifier,
	}, nil
}

// Verify implements TokenVerifier.
func (a *Authenticator) Verify(ctx context.Context, rawToken string) (string, error) {
	token, err := a.IDTokenVerifier.Verify(ctx, rawToken)
	if err != nil {
		return "", err
	}
	return token.Subject, nil
}
