package oauth

import "strings"

// Credential holds a client-credentials pair. Either half may be empty,
// which marks the provider as not configured.
type Credential struct {
	ClientID     string
	ClientSecret string
}

// NewCredential builds a Credential from raw env values, trimming whitespace
// that tends to sneak into copy-pasted secrets.
func NewCredential(clientID, clientSecret string) Credential {
	return Credential{
		ClientID:     strings.TrimSpace(clientID),
		ClientSecret: strings.TrimSpace(clientSecret),
	}
}

// Configured reports whether both halves of the credential are present.
func (c Credential) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Provider describes one OAuth2 client-credentials upstream. Immutable after
// construction; one Client is created per Provider.
type Provider struct {
	// Name identifies the provider in logs and error messages.
	Name string
	// TokenURL is the OAuth token endpoint.
	TokenURL string
	// QueryURL is the authenticated GraphQL endpoint.
	QueryURL string
	// Credential is the client-credentials pair for this provider.
	Credential Credential
}
