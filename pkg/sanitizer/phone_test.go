package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"indian mobile without country code", "9876543210", "IN", "+919876543210"},
		{"indian mobile with spaces", "98765 43210", "IN", "+919876543210"},
		{"indian mobile in E.164", "+919876543210", "IN", "+919876543210"},
		{"indian mobile with dashes", "+91-98765-43210", "IN", "+919876543210"},
		{"foreign number keeps its country", "+1 650-253-0000", "IN", "+16502530000"},
		{"us number in us region", "(650) 253-0000", "US", "+16502530000"},
		{"lowercase region", "9876543210", "in", "+919876543210"},
		{"leading and trailing spaces", "  +919876543210  ", "IN", "+919876543210"},
		{"empty string", "", "IN", ""},
		{"only whitespace", "   ", "IN", ""},
		{"too short is kept as typed", "12345", "IN", "12345"},
		{"letters are kept as typed", "call me", "IN", "call me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, tt.region)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q, %q) = %q, want %q", tt.input, tt.region, got, tt.want)
			}
			if again := NormalizePhone(got, tt.region); again != got {
				t.Errorf("NormalizePhone is not idempotent: %q -> %q", got, again)
			}
		})
	}
}
