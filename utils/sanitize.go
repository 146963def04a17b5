package utils

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

// SanitizeText strips any HTML from server-provided text while leaving
// markdown syntax and plain punctuation intact.
func SanitizeText(input string) string {
	return html.UnescapeString(sanitizer.Sanitize(input))
}
