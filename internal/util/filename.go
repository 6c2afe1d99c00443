package util

import (
	"strings"
	"unicode/utf8"
)

// MaxFileNameBytes is the longest name most filesystems accept.
const MaxFileNameBytes = 250

func isValidFatFilenameRune(r rune) bool {
	if r <= 0x1f || r == 0x7f {
		return false
	}

	switch r {
	case '"', '*', '/', ':', '<', '>', '?', '\\', '|':
		return false
	}

	return true
}

// BuildValidFilename replaces characters FAT filesystems reject with '_' and
// truncates the result to maxBytes without splitting a UTF-8 sequence.
func BuildValidFilename(name string, maxBytes int) string {
	name = strings.Trim(name, ". ")
	if name == "" {
		return "(invalid)"
	}

	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if isValidFatFilenameRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}

	return truncateToLength(sb.String(), maxBytes)
}

func truncateToLength(s string, maxBytes int) string {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s
	}

	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}
