package util

import (
	"regexp"
	"strings"
)

// returns the first non-empty string, or the empty string
func CoalesceStr(strs ...string) string {
	for _, s := range strs {
		if len(s) > 0 {
			return s
		}
	}
	return ""
}

// returns true if str starts with the given prefix, case insensitively
func IHasPrefix(str, prefix string) bool {
	return IIndex(str, prefix) == 0
}

// like strings.Index, except case insensitive
func IIndex(s string, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}

// matches the pattern against the text, case insensitively, returning a slice containing the whole match and any captures, or nil if there was no match
func IMatch(pat string, text string) []string {
	return regexp.MustCompile("(?i)" + pat).FindStringSubmatch(text)
}
