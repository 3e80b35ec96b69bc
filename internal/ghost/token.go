package ghost

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The admin API only honors tokens scoped to this audience.
const tokenAudience = "/admin/"

// Tokens are short-lived; each request mints a fresh one.
const tokenTTL = 5 * time.Minute

// AdminToken signs a short-lived admin API token from an "id:hexsecret"
// key. The key id travels in the JWT header as kid and the secret is the
// hex-decoded HMAC-SHA256 signing key.
func AdminToken(apiKey string, now time.Time) (string, error) {
	id, secretHex, ok := strings.Cut(apiKey, ":")
	if !ok || id == "" || secretHex == "" {
		return "", errors.New("invalid admin API key format, expected id:secret")
	}
	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return "", fmt.Errorf("admin API key secret is not valid hex: %w", err)
	}
	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
		"aud": tokenAudience,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = id
	return token.SignedString(secret)
}
