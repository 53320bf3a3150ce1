package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Sanitize strips markup from free text typed into a form before it is
// sent to the backend. Entities produced by the policy are decoded again
// so plain punctuation survives unchanged.
func Sanitize(s string) string {
	return html.UnescapeString(strict.Sanitize(strings.TrimSpace(s)))
}
