package auth

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yigit/abimath/internal/pkg/logger"
)

// Claims defines the verified token content
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// HasPermissions reports whether the token carried a permissions claim
func (c *Claims) HasPermissions() bool {
	return c.Permissions != nil
}

// VerifierConfig holds the expected token parameters
type VerifierConfig struct {
	Audience  string
	Issuer    string
	Algorithm string
}

// Verifier checks bearer tokens against a remote key set
type Verifier struct {
	keys   KeySource
	parser *jwt.Parser
}

// NewVerifier creates a new token verifier
func NewVerifier(keys KeySource, cfg VerifierConfig) *Verifier {
	return &Verifier{
		keys: keys,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{cfg.Algorithm}),
			jwt.WithAudience(cfg.Audience),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify resolves the signing key of tokenString, checks the signature and
// the registered claims, and returns the decoded claims.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	unverified, _, err := v.parser.ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, wrapError(ErrUnparsable.Code, ErrUnparsable.Description, ErrUnparsable.Status, err)
	}
	kid, ok := unverified.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, ErrMissingKeyID
	}

	set, err := v.keys.Keys(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch JSON Web Key Set")
		return nil, wrapError(CodeJWKSUnavailable, "Unable to fetch the signing keys.", http.StatusServiceUnavailable, err)
	}
	key, err := signingKey(set, kid)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		logger.Debug().Msg("Token expired")
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		logger.Debug().Err(err).Msg("Incorrect claims")
		return nil, ErrIncorrectClaims
	case err != nil:
		return nil, wrapError(ErrUnparsable.Code, ErrUnparsable.Description, ErrUnparsable.Status, err)
	case !token.Valid:
		return nil, ErrUnparsable
	}
	return claims, nil
}

// CheckPermission requires permission to be listed in the claims
func CheckPermission(claims *Claims, permission string) error {
	if !claims.HasPermissions() {
		return ErrPermissionsMissing
	}
	if !slices.Contains(claims.Permissions, permission) {
		return ErrPermissionDenied
	}
	return nil
}

// Authorize runs the whole chain for one request: header, token, permission.
func (v *Verifier) Authorize(ctx context.Context, authHeader, permission string) (*Claims, error) {
	tokenString, err := ExtractBearerToken(authHeader)
	if err != nil {
		return nil, err
	}
	claims, err := v.Verify(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if err := CheckPermission(claims, permission); err != nil {
		return nil, err
	}
	return claims, nil
}
