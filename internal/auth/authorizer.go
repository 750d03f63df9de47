package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Scopes guarding the question write operations.
const (
	ScopeCreateQuestions = "post:questions"
	ScopeDeleteQuestions = "delete:questions"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allowed means the caller holds the required scope.
	Allowed Decision = iota
	// Forbidden means the caller is known but lacks the scope.
	Forbidden
	// Unauthenticated means the caller could not be identified.
	Unauthenticated
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Forbidden:
		return "forbidden"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Authorizer decides whether a request may perform an operation that
// requires scope. A non-nil error means the check itself failed.
type Authorizer interface {
	Authorize(r *http.Request, scope string) (Decision, error)
}

// AllowAll is an Authorizer that permits every request.
type AllowAll struct{}

// Authorize implements Authorizer.
func (AllowAll) Authorize(*http.Request, string) (Decision, error) { return Allowed, nil }

// TokenVerifier checks a bearer token and returns the subject it was issued to.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (string, error)
}

// Enforcer is the subset of casbin.IEnforcer the authorizer needs.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// ScopeAuthorizer identifies the caller from the bearer token and asks the
// policy enforcer whether that subject holds the scope.
type ScopeAuthorizer struct {
	verifier TokenVerifier
	enforcer Enforcer
}

// NewScopeAuthorizer creates a new ScopeAuthorizer.
func NewScopeAuthorizer(v TokenVerifier, e Enforcer) *ScopeAuthorizer {
	return &ScopeAuthorizer{verifier: v, enforcer: e}
}

// Authorize implements Authorizer.
func (a *ScopeAuthorizer) Authorize(r *http.Request, scope string) (Decision, error) {
	token, ok := bearerToken(r)
	if !ok {
		return Unauthenticated, nil
	}
	subject, err := a.verifier.Verify(r.Context(), token)
	if err != nil || subject == "" {
		return Unauthenticated, nil
	}

	allowed, err := a.enforcer.Enforce(subject, scope)
	if err != nil {
		return Forbidden, fmt.Errorf("failed to enforce scope %q for %q: %w", scope, subject, err)
	}
	if !allowed {
		return Forbidden, nil
	}
	return Allowed, nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
