package auth

import "strings"

// ExtractBearerToken returns the token part of an Authorization header of
// the form "Bearer <token>". The scheme is matched case-insensitively.
func ExtractBearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) == 0 {
		return "", ErrHeaderMissing
	}

	switch {
	case !strings.EqualFold(parts[0], "bearer"):
		return "", ErrNotBearer
	case len(parts) == 1:
		return "", ErrTokenNotFound
	case len(parts) > 2:
		return "", ErrTooManyParts
	}
	return parts[1], nil
}
