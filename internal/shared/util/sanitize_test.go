package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: "  cv/2024.docx ", want: "cv_2024.docx"},
		{in: `a\b.txt`, want: "a_b.txt"},
		{in: "jane\x00 \tdoe.pdf", want: "jane doe.pdf"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "\x07", wantErr: true},
	}
	for _, tt := range tests {
		got, err := SanitizeFileName(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidFileName) {
				t.Fatalf("SanitizeFileName(%q) expected ErrInvalidFileName, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFileNameKeepsExtensionWhenTruncating(t *testing.T) {
	got, err := SanitizeFileName(strings.Repeat("x", 300) + ".docx")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if len(got) != maxFileNameLen || !strings.HasSuffix(got, ".docx") {
		t.Fatalf("unexpected truncation %q (%d)", got, len(got))
	}
}
