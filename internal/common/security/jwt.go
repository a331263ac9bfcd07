package security

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed validity window of a session token.
const SessionTTL = 7 * 24 * time.Hour

var errBadUserIDClaim = errors.New("user_id claim is missing or not numeric")

// NewTokenAuth builds the HS256 verifier/signer for session tokens.
func NewTokenAuth(secret []byte) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", secret, nil)
}

// IssueSessionToken signs a token carrying the user identity, valid for
// SessionTTL from now.
func IssueSessionToken(ta *jwtauth.JWTAuth, userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(SessionTTL).Unix(),
	}
	_, tokenString, err := ta.Encode(claims)
	return tokenString, err
}

// VerifySessionToken checks signature and expiry and extracts the user
// identity. Every failure mode (tampered, expired, malformed, bad claim)
// comes back as an error; callers treat any error as "no identity".
func VerifySessionToken(ta *jwtauth.JWTAuth, tokenString string) (int64, error) {
	token, err := jwtauth.VerifyToken(ta, tokenString)
	if err != nil {
		return 0, err
	}
	raw, ok := token.Get("user_id")
	if !ok {
		return 0, errBadUserIDClaim
	}
	return userIDFromClaim(raw)
}

// UserIDFromClaims extracts the user identity from a decoded claims map, as
// produced by jwtauth.FromContext.
func UserIDFromClaims(claims map[string]interface{}) (int64, error) {
	return userIDFromClaim(claims["user_id"])
}

func userIDFromClaim(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, errBadUserIDClaim
		}
		return id, nil
	default:
		return 0, errBadUserIDClaim
	}
}
