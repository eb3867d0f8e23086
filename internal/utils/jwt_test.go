package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/notsus/site-backend/models"
)

const (
	testIssuer  = "test-issuer"
	testSignKey = "test-sign-key"
)

func testUser() models.User {
	return models.User{UserID: 42, Email: "user@example.com", IsAdmin: false}
}

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser(), time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.SignedString == "" {
		t.Fatal("expected non-empty signed string")
	}
	if parts := strings.Split(token.SignedString, "."); len(parts) != 3 {
		t.Errorf("expected compact JWS with 3 parts, got %d", len(parts))
	}
	if token.Claims.UserID != 42 || token.Claims.Email != "user@example.com" {
		t.Errorf("unexpected claims: %+v", token.Claims)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		signKey  string
	}{
		{"empty issuer", "", time.Hour, testSignKey},
		{"zero duration", testIssuer, 0, testSignKey},
		{"empty sign key", testIssuer, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, testUser(), tt.duration, tt.signKey)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	user := models.User{UserID: 7, Email: "admin@example.com", IsAdmin: true}
	token, err := GenerateJWTToken(testIssuer, user, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("expected UserID=7, got %d", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("expected admin email, got '%s'", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("expected IsAdmin=true")
	}
}

func TestValidateAndParseJWTToken_WrongSignKey(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser(), time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateAndParseJWTToken(token.SignedString, "other-key", testIssuer); err == nil {
		t.Fatal("expected error for wrong sign key, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser(), time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, "other-issuer"); err == nil {
		t.Fatal("expected error for wrong issuer, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser(), time.Nanosecond, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestValidateAndParseJWTToken_Garbage(t *testing.T) {
	if _, err := ValidateAndParseJWTToken("not.a.jwt", testSignKey, testIssuer); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing token", "Bearer ", "", true},
		{"no scheme", "abc.def.ghi", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}
