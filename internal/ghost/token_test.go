package ghost

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testKeyID = "65a1c2d3e4f5a6b7c8d9e0f1"
const testSecretHex = "00112233445566778899aabbccddeeff"

func TestAdminTokenShapeAndClaims(t *testing.T) {
	now := time.Unix(1700000000, 0)
	signed, err := AdminToken(testKeyID+":"+testSecretHex, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parts := strings.Split(signed, "."); len(parts) != 3 {
		t.Fatalf("expected compact three-part token, got %d parts", len(parts))
	}

	secret, _ := hex.DecodeString(testSecretHex)
	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithAudience("/admin/"), jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if kid := parsed.Header["kid"]; kid != testKeyID {
		t.Fatalf("expected kid header %q, got %v", testKeyID, kid)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	if exp-iat != 300 {
		t.Fatalf("expected 5 minute lifetime, got %d seconds", exp-iat)
	}
}

func TestAdminTokenRejectsBadKeys(t *testing.T) {
	if _, err := AdminToken("no-separator", time.Now()); err == nil {
		t.Fatalf("expected error for missing separator")
	}
	if _, err := AdminToken("id:", time.Now()); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := AdminToken("id:nothex!", time.Now()); err == nil {
		t.Fatalf("expected error for non-hex secret")
	}
}
