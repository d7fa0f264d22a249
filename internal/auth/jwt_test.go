package auth

import (
	"testing"
	"time"

	"github.com/skyps2003/Freelancer/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", models.RoleFreelancer, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user ID = %q, want user-1", claims.UserID)
	}
	if claims.Role != models.RoleFreelancer {
		t.Errorf("role = %q, want %q", claims.Role, models.RoleFreelancer)
	}
}

func TestParseTokenRejections(t *testing.T) {
	valid, err := GenerateToken("secret", "user-1", models.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	expired, err := GenerateToken("secret", "user-1", models.RoleUser, -time.Hour)
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "other-secret", valid},
		{"expired", "secret", expired},
		{"garbage", "secret", "not.a.token"},
		{"empty", "secret", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.secret, tt.token); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
