package util

import (
	"errors"
	"strings"
)

// SanitizeFileName maps a user-supplied file name onto the storage-safe
// character set: every byte outside [A-Za-z0-9.-_] becomes an underscore.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if safeFileNameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String(), nil
}

func safeFileNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '-' || r == '_':
		return true
	}
	return false
}
