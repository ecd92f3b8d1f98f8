package model

import "strings"

// Task is a single to-do entry. ID is the only lookup key and never changes.
type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// NormalizeText trims surrounding whitespace and reports whether anything is left.
// Invalid UTF-8 becomes U+FFFD so the stored text is what decodes back.
func NormalizeText(s string) (string, bool) {
	s = strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
	return s, s != ""
}
