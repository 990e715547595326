package ioutils

import "testing"

func TestRemoveBadCharacters(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`<bad-/test|"\filename:?>*`, "bad-testfilename"},
		{"pond or ditch", "pond or ditch"},
		{"lake/pond", "lakepond"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := RemoveBadCharacters(tt.input)
			if got != tt.expected {
				t.Errorf("RemoveBadCharacters(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
