package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAuthService(t *testing.T) {
	secret := "test-secret-key"
	service := NewAuthService(secret)

	if service == nil {
		t.Fatal("expected non-nil AuthService")
	}
	if string(service.jwtSecret) != secret {
		t.Errorf("expected secret %q, got %q", secret, string(service.jwtSecret))
	}
	if service.tokenDuration != 24*time.Hour {
		t.Errorf("expected token duration 24h, got %v", service.tokenDuration)
	}
}

func TestHashAPIKey(t *testing.T) {
	service := NewAuthService("test-secret")

	tests := []struct {
		name   string
		apiKey string
	}{
		{name: "valid key", apiKey: "sk-service-abc123"},
		{name: "empty key", apiKey: ""},
		{name: "long key", apiKey: strings.Repeat("a", 72)},
		{name: "key with special characters", apiKey: "k3y!#%&*()[]{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := service.HashAPIKey(tt.apiKey)
			if err != nil {
				t.Fatalf("HashAPIKey() error = %v", err)
			}
			if hash == "" {
				t.Error("expected non-empty hash")
			}
			if hash == tt.apiKey {
				t.Error("hash should not equal plaintext key")
			}
		})
	}
}

func TestHashAPIKey_ProducesDifferentHashes(t *testing.T) {
	service := NewAuthService("test-secret")
	key := "sameKey123"

	hash1, err := service.HashAPIKey(key)
	if err != nil {
		t.Fatalf("first hash failed: %v", err)
	}
	hash2, err := service.HashAPIKey(key)
	if err != nil {
		t.Fatalf("second hash failed: %v", err)
	}
	if hash1 == hash2 {
		t.Error("same key should produce different hashes (bcrypt uses random salt)")
	}
}

func TestCheckAPIKey(t *testing.T) {
	service := NewAuthService("test-secret")

	key := "correctKey123"
	hash, err := service.HashAPIKey(key)
	if err != nil {
		t.Fatalf("failed to hash key: %v", err)
	}

	tests := []struct {
		name string
		key  string
		hash string
		want bool
	}{
		{name: "correct key", key: key, hash: hash, want: true},
		{name: "incorrect key", key: "wrongKey", hash: hash, want: false},
		{name: "empty key against valid hash", key: "", hash: hash, want: false},
		{name: "key against empty hash", key: key, hash: "", want: false},
		{name: "key against malformed hash", key: key, hash: "not-a-valid-bcrypt-hash", want: false},
		{name: "case sensitive check", key: "CorrectKey123", hash: hash, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.CheckAPIKey(tt.key, tt.hash)
			if result != tt.want {
				t.Errorf("CheckAPIKey() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestIssueServiceToken(t *testing.T) {
	service := NewAuthService("test-secret-key")

	tests := []struct {
		name      string
		accountID string
		account   string
	}{
		{name: "regular account", accountID: "svc-123", account: "dictionary-importer"},
		{name: "empty name", accountID: "svc-456", account: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.IssueServiceToken(tt.accountID, tt.account)
			if err != nil {
				t.Fatalf("IssueServiceToken() error = %v", err)
			}
			if token == "" {
				t.Fatal("expected non-empty token")
			}

			claims, err := service.ValidateToken(token)
			if err != nil {
				t.Fatalf("failed to validate issued token: %v", err)
			}

			if claims.AccountID != tt.accountID {
				t.Errorf("AccountID = %q, want %q", claims.AccountID, tt.accountID)
			}
			if claims.Name != tt.account {
				t.Errorf("Name = %q, want %q", claims.Name, tt.account)
			}
			if claims.Issuer != "crossgen" {
				t.Errorf("Issuer = %q, want %q", claims.Issuer, "crossgen")
			}
		})
	}
}

func TestIssueServiceToken_Expiration(t *testing.T) {
	service := NewAuthService("test-secret-key")

	before := time.Now().Truncate(time.Second)
	token, err := service.IssueServiceToken("svc-123", "test")
	after := time.Now().Add(time.Second).Truncate(time.Second)

	if err != nil {
		t.Fatalf("IssueServiceToken() error = %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	actualExpiry := claims.ExpiresAt.Time
	minExpiry := before.Add(24 * time.Hour)
	maxExpiry := after.Add(24 * time.Hour)

	if actualExpiry.Before(minExpiry) || actualExpiry.After(maxExpiry) {
		t.Errorf("token expiry = %v, expected between %v and %v", actualExpiry, minExpiry, maxExpiry)
	}

	if claims.IssuedAt.Time.Before(before) || claims.IssuedAt.Time.After(after) {
		t.Errorf("token IssuedAt = %v, expected between %v and %v", claims.IssuedAt.Time, before, after)
	}
}

func TestValidateToken(t *testing.T) {
	service := NewAuthService("test-secret-key")

	validToken, _ := service.IssueServiceToken("svc-123", "test")

	tests := []struct {
		name      string
		token     string
		wantErr   error
		wantClaim string
	}{
		{name: "valid token", token: validToken, wantErr: nil, wantClaim: "svc-123"},
		{name: "empty token", token: "", wantErr: ErrInvalidToken},
		{name: "malformed token", token: "not.a.valid.jwt.token", wantErr: ErrInvalidToken},
		{name: "random string", token: "randomgarbage123", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("ValidateToken() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ValidateToken() unexpected error = %v", err)
			}
			if claims.AccountID != tt.wantClaim {
				t.Errorf("AccountID = %q, want %q", claims.AccountID, tt.wantClaim)
			}
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service1 := NewAuthService("secret-one")
	service2 := NewAuthService("secret-two")

	token, err := service1.IssueServiceToken("svc-123", "test")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = service2.ValidateToken(token)
	if err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken when validating with wrong secret, got %v", err)
	}
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	service := &AuthService{
		jwtSecret:     []byte("test-secret"),
		tokenDuration: -1 * time.Hour,
	}

	token, err := service.IssueServiceToken("svc-123", "test")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = service.ValidateToken(token)
	if err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired for expired token, got %v", err)
	}
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	service := NewAuthService("test-secret")

	claims := &Claims{
		AccountID: "svc-123",
		Name:      "test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "crossgen",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

	_, err := service.ValidateToken(tokenString)
	if err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for wrong signing method, got %v", err)
	}
}

func TestClaims_Structure(t *testing.T) {
	service := NewAuthService("test-secret")

	token, _ := service.IssueServiceToken("svc-123", "Display Name")
	claims, _ := service.ValidateToken(token)

	if claims.AccountID == "" {
		t.Error("AccountID should not be empty")
	}
	_ = claims.Name
	if claims.ExpiresAt == nil {
		t.Error("ExpiresAt should not be nil")
	}
	if claims.IssuedAt == nil {
		t.Error("IssuedAt should not be nil")
	}
	if claims.Issuer == "" {
		t.Error("Issuer should not be empty")
	}
}
