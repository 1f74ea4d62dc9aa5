package util

import (
	"strings"
	"testing"
)

func TestSanitizeRecipientName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain name", "Sok Dara", "Sok Dara"},
		{"Path separators", `Sok/Dara\Jr`, "Sok-Dara-Jr"},
		{"Windows reserved characters", `a:b*c?d"e<f>g|h`, "a-b-c-d-e-f-g-h"},
		{"Only unsafe characters", `/\:*?`, "recipient"},
		{"Empty name", "", "recipient"},
		{"Whitespace only", "   ", "recipient"},
		{"Leading and trailing noise", "  ./Dara/.  ", "Dara"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeRecipientName(tt.input); got != tt.expected {
				t.Errorf("SanitizeRecipientName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAddUniquePrefixToFileName(t *testing.T) {
	filename := "testfile.txt"
	result := AddUniquePrefixToFileName(filename)

	if !strings.HasSuffix(result, "_testfile.txt") {
		t.Errorf("Expected filename to have unique prefix, got %s", result)
	}

	prefix := strings.Split(result, "_")[0]
	if len(prefix) == 0 {
		t.Errorf("Expected a non-empty unique prefix, got %s", prefix)
	}
}
