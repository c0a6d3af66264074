package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2-but-longer" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "hunter2-but-longer") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password must not verify")
	}
}

func TestTokenRoundtrip(t *testing.T) {
	token, err := GenerateToken("user-42")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	userID, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("got user id %q, want user-42", userID)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestParseToken_Expired(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "user-42",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("dev-only-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken(signed); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseToken_WrongAlgorithm(t *testing.T) {
	// alg "none" style tampering must be rejected
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "user-42"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken(signed); err == nil {
		t.Error("expected error for unsigned token")
	}
}
