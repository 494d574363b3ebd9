package auth

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := IssueSessionToken("secret", "session-1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	sessionID, err := ValidateSessionToken("secret", token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sessionID != "session-1" {
		t.Fatalf("expected session-1, got %q", sessionID)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, _ := IssueSessionToken("secret", "session-1", time.Hour)
	if _, err := ValidateSessionToken("other", token); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, _ := IssueSessionToken("secret", "session-1", -time.Minute)
	if _, err := ValidateSessionToken("secret", token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}
