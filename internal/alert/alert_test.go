package alert

import (
	"errors"
	"testing"
)

type recorder struct {
	played []string
	err    error
}

func (r *recorder) Play(resource string) error {
	r.played = append(r.played, resource)
	return r.err
}

func TestCommandEmpty(t *testing.T) {
	if err := (Command{}).Play("x"); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestCommandMissingBinary(t *testing.T) {
	err := (Command{Args: []string{"/nonexistent/player-binary"}}).Play("x")
	if err == nil {
		t.Fatal("expected start error")
	}
}

func TestNewSelectsPlayer(t *testing.T) {
	if p := New(nil); p != nil {
		t.Fatalf("no args should yield no player, got %#v", p)
	}
	p, ok := New([]string{"paplay"}).(Command)
	if !ok || p.Args[0] != "paplay" {
		t.Fatalf("expected Command player, got %#v", p)
	}
}

func TestFireSwallowsErrors(t *testing.T) {
	r := &recorder{err: errors.New("no audio device")}
	cmd := Fire(r, "beep.ogg")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("Fire should produce no message, got %#v", msg)
	}
	if len(r.played) != 1 || r.played[0] != "beep.ogg" {
		t.Fatalf("played = %v", r.played)
	}
}

func TestFireNilPlayer(t *testing.T) {
	if Fire(nil, "x") != nil {
		t.Fatal("nil player should yield nil command")
	}
}
