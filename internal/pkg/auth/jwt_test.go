package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testKID      = "test-key"
	testECKID    = "test-ec-key"
	testAudience = "abimath"
	testIssuer   = "https://abimath.example.com/"
)

type testIdP struct {
	key    *rsa.PrivateKey
	server *httptest.Server
}

func newTestIdP(t *testing.T) *testIdP {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	set := jose.JSONWebKeySet{Keys: []jose.JSONWebKey{
		{Key: &key.PublicKey, KeyID: testKID, Algorithm: "RS256", Use: "sig"},
		{Key: &ecKey.PublicKey, KeyID: testECKID, Algorithm: "ES256", Use: "sig"},
	}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	}))
	t.Cleanup(server.Close)

	return &testIdP{key: key, server: server}
}

func (p *testIdP) verifier() *Verifier {
	return NewVerifier(NewHTTPKeySource(p.server.URL, time.Second), VerifierConfig{
		Audience:  testAudience,
		Issuer:    testIssuer,
		Algorithm: "RS256",
	})
}

func (p *testIdP) mint(t *testing.T, kid string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(p.key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func validClaims(permissions ...string) *Claims {
	return &Claims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			Subject:   "auth0|instructor1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr *Error
	}{
		{"", "", ErrHeaderMissing},
		{"   ", "", ErrHeaderMissing},
		{"Basic abc", "", ErrNotBearer},
		{"Bearer", "", ErrTokenNotFound},
		{"Bearer a b", "", ErrTooManyParts},
		{"Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"bearer abc", "abc", nil},
	}

	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ExtractBearerToken(%q) error = %v, want %v", tt.header, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, %v; want %q", tt.header, got, err, tt.want)
		}
	}
}

func TestAuthorize(t *testing.T) {
	idp := newTestIdP(t)
	v := idp.verifier()

	expired := validClaims("get:students")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongAudience := validClaims("get:students")
	wrongAudience.Audience = jwt.ClaimStrings{"someone-else"}

	wrongIssuer := validClaims("get:students")
	wrongIssuer.Issuer = "https://evil.example.com/"

	tests := []struct {
		name       string
		header     string
		wantCode   string
		wantStatus int
	}{
		{"no header", "", CodeHeaderMissing, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", CodeInvalidHeader, http.StatusBadRequest},
		{"no kid", "Bearer " + idp.mint(t, "", validClaims("get:students")), CodeInvalidHeader, http.StatusUnauthorized},
		{"unknown kid", "Bearer " + idp.mint(t, "other", validClaims("get:students")), CodeInvalidHeader, http.StatusBadRequest},
		{"kid bound to a non-RSA key", "Bearer " + idp.mint(t, testECKID, validClaims("get:students")), CodeInvalidHeader, http.StatusBadRequest},
		{"expired", "Bearer " + idp.mint(t, testKID, expired), CodeTokenExpired, http.StatusUnauthorized},
		{"wrong audience", "Bearer " + idp.mint(t, testKID, wrongAudience), CodeInvalidClaims, http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + idp.mint(t, testKID, wrongIssuer), CodeInvalidClaims, http.StatusUnauthorized},
		{"no permissions claim", "Bearer " + idp.mint(t, testKID, validClaims()), CodeInvalidClaims, http.StatusBadRequest},
		{"permission absent", "Bearer " + idp.mint(t, testKID, validClaims("post:students")), CodeUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Authorize(context.Background(), tt.header, "get:students")
			var authErr *Error
			if !errors.As(err, &authErr) {
				t.Fatalf("Authorize() error = %v, want *Error", err)
			}
			if authErr.Code != tt.wantCode || authErr.Status != tt.wantStatus {
				t.Errorf("Authorize() = %s/%d, want %s/%d", authErr.Code, authErr.Status, tt.wantCode, tt.wantStatus)
			}
		})
	}
}

func TestAuthorize_Success(t *testing.T) {
	idp := newTestIdP(t)
	token := idp.mint(t, testKID, validClaims("get:students", "post:students"))

	claims, err := idp.verifier().Authorize(context.Background(), "Bearer "+token, "post:students")
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if claims.Subject != "auth0|instructor1" {
		t.Errorf("Subject = %q", claims.Subject)
	}
}

func TestAuthorize_EmptyPermissionsIsDenied(t *testing.T) {
	idp := newTestIdP(t)
	claims := validClaims()
	claims.Permissions = []string{}
	token := idp.mint(t, testKID, claims)

	_, err := idp.verifier().Authorize(context.Background(), "Bearer "+token, "get:students")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Authorize() error = %v, want %v", err, ErrPermissionDenied)
	}
}

func TestVerify_KeySetUnavailable(t *testing.T) {
	idp := newTestIdP(t)
	token := idp.mint(t, testKID, validClaims("get:students"))
	idp.server.Close()

	_, err := idp.verifier().Verify(context.Background(), token)
	var authErr *Error
	if !errors.As(err, &authErr) || authErr.Code != CodeJWKSUnavailable || authErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Verify() error = %v, want %s", err, CodeJWKSUnavailable)
	}
}

func TestHTTPKeySource_Keys(t *testing.T) {
	idp := newTestIdP(t)

	set, err := NewHTTPKeySource(idp.server.URL, time.Second).Keys(context.Background())
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	key, err := signingKey(set, testKID)
	if err != nil {
		t.Fatalf("signingKey() error = %v", err)
	}
	if !key.Equal(&idp.key.PublicKey) {
		t.Error("published key does not match the signing key")
	}
	if _, err := signingKey(set, "missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("signingKey(missing) error = %v, want %v", err, ErrKeyNotFound)
	}
}

func TestHTTPKeySource_BadResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}},
		{"not json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()
			if _, err := NewHTTPKeySource(server.URL, time.Second).Keys(context.Background()); err == nil {
				t.Error("Keys() expected an error")
			}
		})
	}
}
