package jwt

import (
	"errors"
	"testing"
)

const testSecret = "test-secret"

func TestAuthTokenRoundTrip(t *testing.T) {
	token, err := GenerateAuthToken(42, "ama@example.com", "agent", "Ama Mensah", testSecret, 24)
	if err != nil {
		t.Fatalf("GenerateAuthToken() error = %v", err)
	}

	claims, err := ValidateAuthToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAuthToken() error = %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "ama@example.com" {
		t.Errorf("Email = %q, want ama@example.com", claims.Email)
	}
	if claims.Role != "agent" {
		t.Errorf("Role = %q, want agent", claims.Role)
	}
	if claims.Name != "Ama Mensah" {
		t.Errorf("Name = %q, want Ama Mensah", claims.Name)
	}
}

func TestValidateAuthTokenRejects(t *testing.T) {
	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := GenerateAuthToken(1, "a@b.com", "agent", "A", "other-secret", 24)
				if err != nil {
					t.Fatal(err)
				}
				return tok
			},
			wantErr: ErrTokenInvalid,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				tok, err := GenerateAuthToken(1, "a@b.com", "agent", "A", testSecret, -1)
				if err != nil {
					t.Fatal(err)
				}
				return tok
			},
			wantErr: ErrTokenExpired,
		},
		{
			name:    "garbage",
			token:   func(t *testing.T) string { return "not.a.token" },
			wantErr: ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAuthToken(tt.token(t), testSecret)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAuthToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-123", testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := ValidateRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.TokenID != "token-id-123" {
		t.Errorf("TokenID = %q, want token-id-123", claims.TokenID)
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	refresh, err := GenerateRefreshToken(7, "token-id-123", testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	// A refresh token parsed as an auth token carries no identity claims
	claims, err := ValidateAuthToken(refresh, testSecret)
	if err == nil && claims.Email != "" {
		t.Errorf("refresh token validated as auth token with email %q", claims.Email)
	}
}
