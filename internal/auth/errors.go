package auth

import "errors"

// Authentication failure kinds. Callers match them with errors.Is; all of them
// surface to clients as the same 401 response.
var (
	// ErrInvalidCredentials means the username is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMalformedToken means the bearer string is not a parseable token.
	ErrMalformedToken = errors.New("malformed token")
	// ErrInvalidSignature means the token was not signed with the server secret.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired means the token's expiration instant has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrPrincipalNotFound means the token subject no longer exists.
	ErrPrincipalNotFound = errors.New("principal not found")
)

// IsAuthError reports whether err is one of the authentication failure kinds.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrPrincipalNotFound)
}
