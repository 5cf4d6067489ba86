package search

import "unicode/utf8"

const (
	// NoTitle is shown for results without a title.
	NoTitle = "No title"
	// Ellipsis marks truncated text.
	Ellipsis = "..."
)

// Text dereferences an optional field, returning "" when absent.
func Text(field *string) string {
	if field == nil {
		return ""
	}
	return *field
}

// TitleOf returns the result title, or NoTitle when the title is absent or empty.
// An empty title renders the same as a missing one.
func TitleOf(r Result) string {
	if r.Title == nil || *r.Title == "" {
		return NoTitle
	}
	return *r.Title
}

// Truncate cuts text to at most limit runes, appending Ellipsis when it cut anything.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	return string(runes[:limit]) + Ellipsis
}

// Ptr returns a pointer to s, handy for building optional fields.
func Ptr(s string) *string {
	return &s
}
