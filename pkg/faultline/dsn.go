// dsn.go parses connection descriptors and derives the envelope endpoint.

package faultline

import (
	"fmt"
	"net/url"
	"strings"
)

// DSN identifies a remote ingestion endpoint and the key used to
// authenticate against it. Immutable after parsing.
type DSN struct {
	publicKey   string
	envelopeURL *url.URL
}

// ParseDSN parses a connection descriptor of the form
//
//	{scheme}://{publicKey}[,{secret}]@{host}[:{port}]/{projectID}
//
// and derives the envelope submission endpoint
//
//	{scheme}://{host}:{port}/api/{projectID}/envelope/
//
// When the descriptor carries no explicit port, 443 is used for "https"-style
// schemes and 80 otherwise. The secret part of the key, when present, is
// parsed and discarded. Returns ErrDSNMissing, ErrDSNMalformed, or
// ErrDSNInvalid (wrapped with detail) on bad input.
func ParseDSN(raw string) (*DSN, error) {
	if raw == "" {
		return nil, ErrDSNMissing
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDSNMalformed, err)
	}

	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: missing scheme", ErrDSNInvalid)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", ErrDSNInvalid)
	}
	if u.User == nil {
		return nil, fmt.Errorf("%w: missing public key", ErrDSNInvalid)
	}

	// The public key is everything before the first comma of the user info.
	publicKey, _, _ := strings.Cut(u.User.Username(), ",")
	if publicKey == "" {
		return nil, fmt.Errorf("%w: missing public key", ErrDSNInvalid)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	projectID := segments[len(segments)-1]
	if projectID == "" {
		return nil, fmt.Errorf("%w: missing project ID", ErrDSNInvalid)
	}

	port := u.Port()
	if port == "" {
		if strings.HasPrefix(u.Scheme, "https") {
			port = "443"
		} else {
			port = "80"
		}
	}

	envelopeURL, err := url.Parse(fmt.Sprintf("%s://%s:%s/api/%s/envelope/",
		u.Scheme, u.Hostname(), port, projectID))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot derive envelope URL: %v", ErrDSNInvalid, err)
	}

	return &DSN{
		publicKey:   publicKey,
		envelopeURL: envelopeURL,
	}, nil
}

// PublicKey returns the key used to authenticate envelope submissions.
func (d *DSN) PublicKey() string {
	return d.publicKey
}

// EnvelopeURL returns the derived envelope submission endpoint.
// The port is always explicit, even when it was defaulted from the scheme.
func (d *DSN) EnvelopeURL() string {
	return d.envelopeURL.String()
}
