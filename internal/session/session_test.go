package session

import (
	"testing"
	"time"
)

func TestStartAndResolve(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	s, tok, err := m.Start()
	if err != nil {
		t.Fatal(err)
	}
	if s.ID == "" || tok == "" {
		t.Fatalf("session = %+v, token = %q", s, tok)
	}
	got, err := m.FromToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != s.ID {
		t.Errorf("resolved %s, want %s", got.ID, s.ID)
	}
}

func TestRevealStateIsPerSession(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	s1, _, _ := m.Start()
	s2, _, _ := m.Start()
	s1.Reveal.Toggle("q1-a")
	if s2.Reveal.IsRevealed("q1-a") {
		t.Fatal("reveal state leaked across sessions")
	}
}

func TestExpiredSession(t *testing.T) {
	m := NewManager("test-secret", -time.Minute) // already expired on issue
	s, tok, err := m.Start()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(s.ID); err != ErrExpired {
		t.Errorf("Get on expired session = %v, want ErrExpired", err)
	}
	// The JWT itself is also expired, so token resolution fails too.
	if _, err := m.FromToken(tok); err == nil {
		t.Error("expired token must not resolve")
	}
}

func TestBadToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	if _, err := m.FromToken("not-a-jwt"); err == nil {
		t.Error("garbage token must not resolve")
	}
	other := NewManager("other-secret", time.Hour)
	_, tok, _ := other.Start()
	if _, err := m.FromToken(tok); err == nil {
		t.Error("token signed with a different secret must not resolve")
	}
}

func TestEnd(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	s, _, _ := m.Start()
	m.End(s.ID)
	if _, err := m.Get(s.ID); err != ErrNotFound {
		t.Errorf("Get after End = %v, want ErrNotFound", err)
	}
}
