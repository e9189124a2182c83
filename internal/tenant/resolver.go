// Package tenant resolves and enforces the tenant identity that scopes
// every merchant memory entry and every persisted row. Tenant identity is
// always an explicit argument, never ambient state, and a missing or
// malformed identity is a hard failure, never a default.
package tenant

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/model"
)

// Resolver extracts the caller's tenant identity from a request. The
// resolution strategy is selected once at process configuration time.
type Resolver interface {
	Resolve(r *http.Request) (model.TenantID, error)
}

// DefaultHeader is the request header carrying the tenant identifier for
// header-based resolution.
const DefaultHeader = "X-Tenant-ID"

// HeaderResolver reads an explicit tenant identifier carried on the
// request.
type HeaderResolver struct {
	header string
}

// NewHeaderResolver creates a header-based resolver. An empty header name
// selects DefaultHeader.
func NewHeaderResolver(header string) *HeaderResolver {
	if header == "" {
		header = DefaultHeader
	}
	return &HeaderResolver{header: header}
}

// Resolve returns the tenant named by the configured header.
func (h *HeaderResolver) Resolve(r *http.Request) (model.TenantID, error) {
	value := strings.TrimSpace(r.Header.Get(h.header))
	if value == "" {
		return "", fmt.Errorf("%w: header %s absent", common.ErrUnauthorized, h.header)
	}
	return model.TenantID(value), nil
}

// TokenVerifier validates an identity token and returns its claims. The
// actual verification lives with the identity provider integration; this
// package only consumes verified claims.
type TokenVerifier interface {
	Verify(token string) (map[string]any, error)
}

// DefaultClaim is the claim carrying the tenant identifier for claim-based
// resolution.
const DefaultClaim = "tenant_id"

// ClaimResolver reads the tenant identifier from a verified identity
// token presented as a bearer credential.
type ClaimResolver struct {
	verifier TokenVerifier
	claim    string
}

// NewClaimResolver creates a claim-based resolver. An empty claim name
// selects DefaultClaim.
func NewClaimResolver(verifier TokenVerifier, claim string) *ClaimResolver {
	if claim == "" {
		claim = DefaultClaim
	}
	return &ClaimResolver{verifier: verifier, claim: claim}
}

// Resolve verifies the bearer token and returns the tenant claim.
func (c *ClaimResolver) Resolve(r *http.Request) (model.TenantID, error) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: bearer token absent", common.ErrUnauthorized)
	}

	claims, err := c.verifier.Verify(strings.TrimSpace(token))
	if err != nil {
		return "", fmt.Errorf("%w: token verification failed: %v", common.ErrUnauthorized, err)
	}

	value, _ := claims[c.claim].(string)
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: claim %s absent or malformed", common.ErrUnauthorized, c.claim)
	}

	return model.TenantID(value), nil
}

// Config selects the resolution strategy at process configuration time.
type Config struct {
	Mode     string // "header" or "claim"
	Header   string
	Claim    string
	Verifier TokenVerifier
}

// NewResolver builds the configured resolver.
func NewResolver(cfg Config) (Resolver, error) {
	switch strings.ToLower(cfg.Mode) {
	case "", "header":
		return NewHeaderResolver(cfg.Header), nil
	case "claim":
		if cfg.Verifier == nil {
			return nil, fmt.Errorf("%w: claim resolution requires a token verifier", common.ErrInvalidConfig)
		}
		return NewClaimResolver(cfg.Verifier, cfg.Claim), nil
	default:
		return nil, fmt.Errorf("%w: unknown tenant resolution mode %q", common.ErrInvalidConfig, cfg.Mode)
	}
}
