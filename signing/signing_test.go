package signing

import (
	"testing"
	"time"
)

func TestSignUnsignRoundTrip(t *testing.T) {
	s := New([]byte("test-key"))
	token := s.Sign("verify:42")

	value, err := s.Unsign(token, time.Hour)
	if err != nil {
		t.Fatalf("unsign: %v", err)
	}
	if value != "verify:42" {
		t.Fatalf("got %q, want %q", value, "verify:42")
	}
}

func TestUnsignTamperedAnyPosition(t *testing.T) {
	s := New([]byte("test-key"))
	token := s.Sign("verify:42")

	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		flip := byte('A')
		if token[i] == 'A' {
			flip = 'B'
		}
		tampered := token[:i] + string(flip) + token[i+1:]
		if tampered == token {
			continue
		}
		if _, err := s.Unsign(tampered, time.Hour); err == nil {
			t.Fatalf("tampering position %d went undetected", i)
		}
	}
}

func TestUnsignWrongKey(t *testing.T) {
	token := New([]byte("key-one")).Sign("verify:1")
	if _, err := New([]byte("key-two")).Unsign(token, time.Hour); err != ErrBadSignature {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestUnsignExpired(t *testing.T) {
	s := New([]byte("test-key"))
	s.Now = func() time.Time { return time.Now().Add(-73 * time.Hour) }
	token := s.Sign("verify:1")

	s.Now = time.Now
	if _, err := s.Unsign(token, 72*time.Hour); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	// Still fine within the window
	if _, err := s.Unsign(token, 100*time.Hour); err != nil {
		t.Fatalf("expected valid inside window, got %v", err)
	}
}

func TestUnsignGarbage(t *testing.T) {
	s := New([]byte("test-key"))
	for _, token := range []string{"", "nodot", "bad base64!.sig", "YQ.sig"} {
		if _, err := s.Unsign(token, time.Hour); err == nil {
			t.Fatalf("token %q: expected error", token)
		}
	}
}

func TestVerifyEmailTokenYieldsExactID(t *testing.T) {
	s := New([]byte("test-key"))
	token := s.MakeEmailToken(1234)

	id, err := s.VerifyEmailToken(token, time.Hour)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 1234 {
		t.Fatalf("got id %d, want 1234", id)
	}
}

func TestVerifyEmailTokenRejectsWrongPayload(t *testing.T) {
	s := New([]byte("test-key"))
	for _, payload := range []string{"reset:7", "verify:notanumber", "7"} {
		if _, err := s.VerifyEmailToken(s.Sign(payload), time.Hour); err == nil {
			t.Fatalf("payload %q: expected rejection", payload)
		}
	}
}
