package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that are empty or try to escape
// the upload directory.
var ErrInvalidFileName = errors.New("invalid file name")

const maxFileNameLen = 120

// SanitizeFileName turns an uploaded file name into a single safe path
// segment. Separators become underscores, control characters are dropped and
// long names are cut while keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || s == "." {
		return "", ErrInvalidFileName
	}

	if runes := []rune(s); len(runes) > maxFileNameLen {
		ext := []rune(filepath.Ext(s))
		if len(ext) >= maxFileNameLen {
			ext = nil
		}
		s = string(runes[:maxFileNameLen-len(ext)]) + string(ext)
	}
	return s, nil
}
