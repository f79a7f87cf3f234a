package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	jose "github.com/go-jose/go-jose/v4"
)

// maxKeySetSize bounds the key set document read from the provider
const maxKeySetSize = 1 << 20

// KeySource fetches the current key set
type KeySource interface {
	Keys(ctx context.Context) (*jose.JSONWebKeySet, error)
}

// signingKey returns the RSA public key published under kid. A kid that is
// not in the set is ErrKeyNotFound; a kid bound to another key type is
// reported as unparsable.
func signingKey(set *jose.JSONWebKeySet, kid string) (*rsa.PublicKey, error) {
	matches := set.Key(kid)
	if len(matches) == 0 {
		return nil, ErrKeyNotFound
	}
	for _, jwk := range matches {
		if pub, ok := jwk.Key.(*rsa.PublicKey); ok {
			return pub, nil
		}
	}
	return nil, wrapError(ErrUnparsable.Code, ErrUnparsable.Description, ErrUnparsable.Status,
		fmt.Errorf("key %q is %T, not an RSA public key", kid, matches[0].Key))
}

// HTTPKeySource downloads the key set on every call
type HTTPKeySource struct {
	url    string
	client *http.Client
}

// NewHTTPKeySource creates a key source for url. A zero timeout means 5s.
func NewHTTPKeySource(url string, timeout time.Duration) *HTTPKeySource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPKeySource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Keys implements KeySource
func (s *HTTPKeySource) Keys(ctx context.Context) (*jose.JSONWebKeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build key set request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch key set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("key set endpoint returned %s", resp.Status)
	}

	var set jose.JSONWebKeySet
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxKeySetSize)).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode key set: %w", err)
	}
	return &set, nil
}
