//go:build linux

package notify

import (
	"os"
	"testing"
)

func TestHints(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		urgency   byte
		transient bool
	}{
		{"now playing", KindNowPlaying, 0, true},
		{"blocked", KindBlocked, 1, false},
		{"error", KindError, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hints(Notice{Kind: tt.kind})

			if got, ok := h["urgency"].Value().(byte); !ok || got != tt.urgency {
				t.Errorf("urgency = %v, want %d", h["urgency"].Value(), tt.urgency)
			}
			if got := h["desktop-entry"].Value(); got != desktopEntry {
				t.Errorf("desktop-entry = %v, want %q", got, desktopEntry)
			}
			_, transient := h["transient"]
			if transient != tt.transient {
				t.Errorf("transient hint present = %v, want %v", transient, tt.transient)
			}
		})
	}
}

func sessionNotifier(t *testing.T) Notifier {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := n.(*desktop); !ok {
		t.Skip("session bus unreachable")
	}
	return n
}

func TestDesktop_ShowAndDismiss(t *testing.T) {
	n := sessionNotifier(t)

	id, err := n.Show(Notice{Kind: KindError, Title: "Playback error", Body: "from a unit test"})
	if err != nil {
		t.Skipf("no notification server: %v", err)
	}
	if id == 0 {
		t.Error("Show() returned id 0")
	}
	if err := n.Dismiss(id); err != nil {
		t.Errorf("Dismiss() error: %v", err)
	}
}

func TestDesktop_NowPlayingReplaces(t *testing.T) {
	n := sessionNotifier(t)

	first, err := n.Show(Notice{Kind: KindNowPlaying, Title: "One More Time", Body: "Daft Punk"})
	if err != nil {
		t.Skipf("no notification server: %v", err)
	}
	second, err := n.Show(Notice{Kind: KindNowPlaying, Title: "Aerodynamic", Body: "Daft Punk", ReplacesID: first})
	if err != nil {
		t.Fatalf("Show() error: %v", err)
	}
	if second != first {
		t.Errorf("replacing notice got id %d, want %d", second, first)
	}
	_ = n.Dismiss(second)
}
