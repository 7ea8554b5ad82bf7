package store

import "testing"

func TestKeyers(t *testing.T) {
	tests := []struct {
		name       string
		keyer      Keyer
		wantKey    string
		wantPrefix string
	}{
		{"default", NewDefaultKeyer(), "layout:editor", "layout:"},
		{"scoped", NewScopedKeyer(NewDefaultKeyer(), "user:123:"), "user:123:layout:editor", "user:123:layout:"},
		{"scoped nil inner", NewScopedKeyer(nil, "ws:"), "ws:layout:editor", "ws:layout:"},
		{"nested", NewScopedKeyer(NewScopedKeyer(nil, "b:"), "a:"), "a:b:layout:editor", "a:b:layout:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.keyer.LayoutKey("editor"); got != tt.wantKey {
				t.Errorf("LayoutKey = %q, want %q", got, tt.wantKey)
			}
			if got := tt.keyer.Prefix(); got != tt.wantPrefix {
				t.Errorf("Prefix = %q, want %q", got, tt.wantPrefix)
			}
		})
	}
}
