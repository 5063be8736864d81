package core

import (
	"strings"
	"time"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanStringPtr cleans the string `s` points to; a blank string yields nil.
func CleanStringPtr(s *string, lower ...bool) *string {
	if s == nil {
		return nil
	}
	cs := CleanString(*s, lower...)
	if cs == "" {
		return nil
	}
	return &cs
}

// DateOf returns the UTC calendar date of `t` in DateLayout.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
