package utils

import (
	"regexp"
	"strings"
)

var (
	nonIdentChars = regexp.MustCompile(`[^a-z0-9_]`)
	repeatedUnder = regexp.MustCompile(`_+`)
)

// SanitizeIdentifier turns an arbitrary display name into a safe SQL
// identifier: lowercase, anything outside [a-z0-9_] becomes "_", runs of
// "_" collapse, and leading/trailing "_" are stripped. Empty input yields
// an empty string; callers must guard against empty or duplicate results.
func SanitizeIdentifier(name string) string {
	s := strings.ToLower(name)
	s = nonIdentChars.ReplaceAllString(s, "_")
	s = repeatedUnder.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
