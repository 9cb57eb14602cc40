package security

import (
	"testing"
	"time"
)

func TestShareTokenRoundTrip(t *testing.T) {
	issuer := NewShareTokenIssuer("test-secret")

	token, err := issuer.Issue("2025-09-14", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	weekDate, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if weekDate != "2025-09-14" {
		t.Errorf("Verify() week date = %v, want 2025-09-14", weekDate)
	}
}

func TestShareTokenExpired(t *testing.T) {
	issuer := NewShareTokenIssuer("test-secret")

	token, err := issuer.Issue("2025-09-14", -time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Error("expired token should not verify")
	}
}

func TestShareTokenWrongSecret(t *testing.T) {
	token, err := NewShareTokenIssuer("secret-a").Issue("2025-09-14", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := NewShareTokenIssuer("secret-b").Verify(token); err == nil {
		t.Error("token signed with another secret should not verify")
	}
}

func TestShareTokenGarbage(t *testing.T) {
	issuer := NewShareTokenIssuer("test-secret")
	if _, err := issuer.Verify("not-a-token"); err == nil {
		t.Error("garbage input should not verify")
	}
}
