// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "pw1" || strings.Contains(hash, "pw1") {
		t.Error("HashPassword() leaked the plaintext")
	}

	// Salted: same input, different hash
	hash2, _ := HashPassword("pw1", bcrypt.MinCost)
	if hash == hash2 {
		t.Error("HashPassword() produced identical hashes for the same password")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"match", "correct horse", hash, true},
		{"mismatch", "battery staple", hash, false},
		{"empty password", "", hash, false},
		{"malformed hash", "correct horse", "not-a-bcrypt-hash", false},
		{"empty hash", "correct horse", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, tt.hash); got != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-0123456789", time.Hour)

	token, expiresAt, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiresAt %v is not in the future", expiresAt)
	}

	id, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if id.UserID != 42 || id.Username != "alice" {
		t.Errorf("Verify() = %+v, want {42 alice}", id)
	}
}

func TestVerifyRejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-0123456789", time.Hour)
	valid, _, _ := issuer.Issue(7, "bob")

	expired, _, _ := issuer.WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}).Issue(7, "bob")

	otherKey, _, _ := NewTokenIssuer("another-secret-0123456789", time.Hour).Issue(7, "bob")

	foreign := &TokenIssuer{secret: []byte("test-secret-0123456789"), ttl: time.Hour, issuer: "someone-else", now: time.Now}
	foreignIssuer, _, _ := foreign.Issue(7, "bob")

	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    DefaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           7,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: DefaultIssuer},
	}).SignedString([]byte("test-secret-0123456789"))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"tampered", valid[:len(valid)-2] + "xx"},
		{"expired", expired},
		{"wrong key", otherKey},
		{"wrong issuer", foreignIssuer},
		{"alg none", noneAlg},
		{"no expiry", noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestEmptySecretIsRefused(t *testing.T) {
	issuer := NewTokenIssuer("", time.Hour)

	if _, _, err := issuer.Issue(7, "bob"); !errors.Is(err, ErrNoSigningKey) {
		t.Errorf("Issue() error = %v, want ErrNoSigningKey", err)
	}

	// Anyone can sign with an empty key, so such tokens never verify
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    DefaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte{})
	if err != nil {
		t.Skipf("jwt library refuses to sign with an empty key: %v", err)
	}
	if _, err := issuer.Verify(forged); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"missing", "", "", true},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", true},
		{"scheme only", "Bearer", "", true},
		{"blank token", "Bearer   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BearerToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
