package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"), 0)

	token, err := svc.Issue("account-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	subject, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if subject != "account-123" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "account-123")
	}
}

func TestIssueAndVerifyWithTTL(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"), time.Hour)

	token, err := svc.Issue("account-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService([]byte("right-secret"), 0).Issue("account-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = NewTokenService([]byte("wrong-secret"), 0).Verify(token)
	if !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("secret"), -1*time.Minute)

	token, err := svc.Issue("account-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("secret"), 0)

	token, err := svc.Issue("account-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}

	// ペイロード中の1文字を別のbase64文字に差し替える
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(tampered); err == nil {
		t.Fatal("expected error for tampered payload")
	}
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("secret"), 0)

	_, err := svc.Verify("not-a-token")
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
