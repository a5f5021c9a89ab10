package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/config"
)

func TestIPLimiter(t *testing.T) {
	l := newIPLimiter(2)

	if _, ok := l.acquire("10.0.0.1"); !ok {
		t.Fatal("first session should be accepted")
	}
	if n, ok := l.acquire("10.0.0.1"); !ok || n != 2 {
		t.Fatalf("second session: count=%d ok=%v, want 2/true", n, ok)
	}
	if _, ok := l.acquire("10.0.0.1"); ok {
		t.Error("third session from the same IP should be denied")
	}
	if _, ok := l.acquire("10.0.0.2"); !ok {
		t.Error("other IPs have their own budget")
	}

	l.release("10.0.0.1")
	if _, ok := l.acquire("10.0.0.1"); !ok {
		t.Error("released slot should be reusable")
	}

	l.release("10.0.0.2")
	if _, present := l.counts["10.0.0.2"]; present {
		t.Error("idle IPs should be forgotten")
	}
}

func TestIPLimiterUnlimited(t *testing.T) {
	l := newIPLimiter(0)
	for i := range 50 {
		if _, ok := l.acquire("10.0.0.1"); !ok {
			t.Fatalf("session %d denied with no limit", i)
		}
	}
}

func TestSSHServerConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Address = ":2222"
	cfg.Server.IdleTimeout = 5 * time.Minute
	cfg.Game.TickRate = 20

	got := SSHServerConfigFrom(cfg)

	if got.Address != ":2222" || got.IdleTimeout != 5*time.Minute || got.TickRate != 20 {
		t.Errorf("unexpected server config: %+v", got)
	}
	if got.DBPath != cfg.Storage.DBPath || got.MaxSessionsPerIP != cfg.Server.MaxSessionsPerIP {
		t.Errorf("storage or limit not carried over: %+v", got)
	}
}
