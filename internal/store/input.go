package store

import "strings"

// normalizeTitle trims a submitted title and reports whether anything is
// left.
func normalizeTitle(title string) (string, bool) {
	title = strings.TrimSpace(title)
	return title, title != ""
}

// replacement interprets an optional edit value. It yields the trimmed
// value when one was given and is non-blank; otherwise the field keeps its
// current value.
func replacement(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return "", false
	}
	return v, true
}
