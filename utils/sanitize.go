package utils

import "github.com/microcosm-cc/bluemonday"

// Location names come straight from client telemetry and are echoed back to
// every dashboard, so strip markup entirely rather than allowing a subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips HTML from user-supplied text to prevent stored XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
