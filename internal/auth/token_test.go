package auth

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

func TestSignAndParse(t *testing.T) {
	u := &models.User{ID: "abc", Role: models.RoleExpert}

	tok, err := Sign("secret", u, time.Now())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := Parse("secret", tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "abc" || claims.Role != models.RoleExpert {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParseRejects(t *testing.T) {
	u := &models.User{ID: "abc", Role: models.RolePlayer}

	tok, _ := Sign("secret", u, time.Now())
	if _, err := Parse("other", tok); err != ErrInvalidToken {
		t.Fatalf("wrong secret should fail, got %v", err)
	}

	expired, _ := Sign("secret", u, time.Now().Add(-2*TokenTTL))
	if _, err := Parse("secret", expired); err != ErrInvalidToken {
		t.Fatalf("expired token should fail, got %v", err)
	}

	if _, err := Parse("secret", "not-a-token"); err != ErrInvalidToken {
		t.Fatalf("garbage should fail, got %v", err)
	}
}
