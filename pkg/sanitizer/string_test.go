package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Asha Verma  ", "Asha Verma"},
		{"multiple spaces between words", "Asha    Verma", "Asha Verma"},
		{"tabs and newlines", "Asha\t\nVerma", "Asha Verma"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"preserve special characters", " D'Souza-Menon ", "D'Souza-Menon"},
		{"devanagari characters", " आशा वर्मा ", "आशा वर्मा"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeName(got); again != got {
				t.Errorf("NormalizeName is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeSearchTerm(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Cardio", "cardio"},
		{"  DR.  Sarah ", "  dr.  sarah "},
		{"   ", "   "},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeSearchTerm(tt.input); got != tt.want {
				t.Errorf("NormalizeSearchTerm(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
