package utils // package utils provides helper functions for token creation and validation

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// DefaultAccessTTL is applied when a caller does not supply an explicit
// token lifetime.
const DefaultAccessTTL = 15 * time.Minute

// ErrInvalidToken is returned by ParseAccessToken for every validation
// failure: bad signature, malformed payload, missing subject or expired
// token.  Callers map it to a single unauthorized outcome so the cause is
// never leaked to the client.
var ErrInvalidToken = errors.New("invalid access token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string; Exp stores the UTC
// expiration time.  Access tokens are short-lived and sent in the
// Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT whose subject is the
// username.  A non-positive ttl falls back to DefaultAccessTTL.
func NewAccessToken(secret, username string, ttl time.Duration) (AccessToken, error) {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub": username,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates a serialized token and returns its subject.
// The signing method must be HMAC; the exp claim is checked by the jwt
// library during Parse.
func ParseAccessToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
