package consultation

import (
	"regexp"
	"strings"
)

var (
	scriptBlockPattern = regexp.MustCompile(`(?is)<\s*(script|style|iframe|object|embed)\b.*?<\s*/\s*(script|style|iframe|object|embed)\s*>`)
	tagPattern         = regexp.MustCompile(`(?s)</?[a-zA-Z][^>]*>`)
	eventAttrPattern   = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	jsSchemePattern    = regexp.MustCompile(`(?i)javascript\s*:`)
)

// SanitizeText removes script blocks, markup tags, inline event handlers, and
// javascript: schemes from free-text clinical content. Plain text, including
// angle brackets that do not form tags, passes through unchanged apart from
// whitespace trimming.
func SanitizeText(s string) string {
	s = scriptBlockPattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = eventAttrPattern.ReplaceAllString(s, "")
	s = jsSchemePattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
