package utils

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hydraulic pump failures are trending.", "Hydraulic pump failures are trending."},
		{"markdown kept", "**Bold** and `code` & \"quotes\"", "**Bold** and `code` & \"quotes\""},
		{"tags stripped", "see <b>this</b> doc", "see this doc"},
		{"script removed", "hello <script>alert(1)</script>world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.in); got != tt.want {
				t.Errorf("Expected: %q, Got: %q", tt.want, got)
			}
		})
	}
}
