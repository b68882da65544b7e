package stringsutil

import "strings"

// UniqueStrings returns a new slice with duplicates removed, preserving first-seen order.
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	return unique
}

// AppendMissing appends each candidate not already present until values holds
// limit entries.
func AppendMissing(values []string, limit int, candidates ...string) []string {
	for _, candidate := range candidates {
		if len(values) >= limit {
			break
		}
		if !Contains(values, candidate) {
			values = append(values, candidate)
		}
	}
	return values
}

// Contains reports whether value is in values.
func Contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// Truncate returns at most n leading entries of values.
func Truncate(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

// FirstLine returns the first line of s without surrounding whitespace.
func FirstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
