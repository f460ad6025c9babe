package github

import "encoding/json"

const (
	// TokenEnvVar provides the default token when no upstream credential is
	// supplied.
	TokenEnvVar = "GITHUB_TOKEN"

	// DefaultScheme is the authorization scheme used when none is supplied.
	DefaultScheme = "Bearer"
)

// Credential is a resolved token plus its authorization scheme. It is built
// once near the start of a run and shared read-only by every call in it.
//
// App-installation credentials (JWT exchange, expiring tokens) would slot in
// here as an additional scheme.
type Credential struct {
	Token  string
	Scheme string
}

// String redacts the token. Credentials must never reach logs or diagnostics
// in clear.
func (c Credential) String() string {
	return c.Scheme + " <redacted>"
}

// MarshalJSON redacts the token for the same reason as String.
func (c Credential) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"scheme": c.Scheme, "token": "<redacted>"})
}

func (c Credential) header() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	return scheme + " " + c.Token
}

// ResolveCredential produces the effective credential for a call.
//
// Precedence, highest first: the explicit token parameter, an inbound
// credential from an upstream auth step, the environment default. With none
// of the three present the resolution fails with UnauthenticatedError and no
// network call is attempted.
func ResolveCredential(explicit string, inbound *Credential, env func(string) string) (Credential, error) {
	if explicit != "" {
		return Credential{Token: explicit, Scheme: DefaultScheme}, nil
	}
	if inbound != nil && inbound.Token != "" {
		cred := *inbound
		if cred.Scheme == "" {
			cred.Scheme = DefaultScheme
		}
		return cred, nil
	}
	if env != nil {
		if token := env(TokenEnvVar); token != "" {
			return Credential{Token: token, Scheme: DefaultScheme}, nil
		}
	}
	return Credential{}, UnauthenticatedError{}
}
