package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Adam Mickiewicz  ", "Adam Mickiewicz"},
		{"Adam   Mickiewicz", "Adam Mickiewicz"},
		{"\tAdam\nMickiewicz ", "Adam Mickiewicz"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Name(tt.in); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldedName(t *testing.T) {
	if FoldedName("Adam Mickiewicz") != FoldedName("  adam   MICKIEWICZ ") {
		t.Error("expected folded names to match")
	}
	// Fold handles non-ASCII case pairs that ToLower-based comparison misses.
	if FoldedName("Đorđe Balašević") != FoldedName("đorđe balašević") {
		t.Error("expected folded non-ASCII names to match")
	}
}
