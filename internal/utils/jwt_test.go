package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-video-tube/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer = "test-issuer"
	testKey    = "secret-key"
	testUserID = "0190f0c2-7e4a-7c3b-9d2e-1a2b3c4d5e6f"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUserID, models.AccessTokenKind, time.Hour, testKey)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Issuer != testIssuer {
		t.Errorf("expected issuer %s, got %s", testIssuer, token.Issuer)
	}
	if token.Subject != testUserID {
		t.Errorf("expected subject %s, got %s", testUserID, token.Subject)
	}
	if token.ID == "" {
		t.Error("expected jti to be set")
	}
	if token.Kind != models.AccessTokenKind {
		t.Errorf("expected kind access, got %s", token.Kind)
	}
}

func TestGenerateJWTToken_UniquePerCall(t *testing.T) {
	a, _ := GenerateJWTToken(testIssuer, testUserID, models.RefreshTokenKind, time.Hour, testKey)
	b, _ := GenerateJWTToken(testIssuer, testUserID, models.RefreshTokenKind, time.Hour, testKey)

	if a.SignedString == b.SignedString {
		t.Error("expected tokens minted back to back to differ")
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", testUserID, time.Hour, "key"},
		{"empty user", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", testUserID, 0, "key"},
		{"empty key", "iss", testUserID, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, models.AccessTokenKind, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	genToken, _ := GenerateJWTToken(testIssuer, testUserID, models.AccessTokenKind, 5*time.Minute, testKey)

	parsed, err := ValidateAndParseJWTToken(genToken.SignedString, testKey, testIssuer, models.AccessTokenKind)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	userID, err := parsed.UserID()
	if err != nil || userID != testUserID {
		t.Errorf("expected userID %s, got %s (%v)", testUserID, userID, err)
	}
	if parsed.String() != genToken.SignedString {
		t.Error("expected parsed token to keep its signed form")
	}
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	valid, _ := GenerateJWTToken(testIssuer, testUserID, models.AccessTokenKind, time.Minute, testKey)
	expired, _ := GenerateJWTToken(testIssuer, testUserID, models.AccessTokenKind, time.Nanosecond, testKey)
	time.Sleep(1100 * time.Millisecond)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
		kind   models.TokenKind
	}{
		{"wrong key", valid.SignedString, "other-key", testIssuer, models.AccessTokenKind},
		{"wrong issuer", valid.SignedString, testKey, "other-issuer", models.AccessTokenKind},
		{"wrong kind", valid.SignedString, testKey, testIssuer, models.RefreshTokenKind},
		{"expired", expired.SignedString, testKey, testIssuer, models.AccessTokenKind},
		{"garbage", "not.a.token", testKey, testIssuer, models.AccessTokenKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer, tt.kind)
			if err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_WrongKindSentinel(t *testing.T) {
	refresh, _ := GenerateJWTToken(testIssuer, testUserID, models.RefreshTokenKind, time.Minute, testKey)

	_, err := ValidateAndParseJWTToken(refresh.SignedString, testKey, testIssuer, models.AccessTokenKind)
	if !errors.Is(err, ErrWrongTokenKind) {
		t.Errorf("expected ErrWrongTokenKind, got %v", err)
	}
}

func TestValidateAndParseJWTToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("building unsigned token: %v", err)
	}

	if _, err := ValidateAndParseJWTToken(unsigned, testKey, testIssuer, models.AccessTokenKind); err == nil {
		t.Error("expected unsigned token to be rejected")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"bearer abc", "abc", false},
		{"  Bearer   abc  ", "abc", false},
		{"Basic abc", "", true},
		{"Bearer", "", true},
		{"", "", true},
		{"Bearer a b", "", true},
	}

	for _, tt := range tests {
		got, err := ParseBearerToken(tt.header)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: wantErr=%v, got %v", tt.header, tt.wantErr, err)
		}
		if got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.header, tt.want, got)
		}
	}
}
