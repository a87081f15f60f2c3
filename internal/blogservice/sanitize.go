package blogservice

import "regexp"

var (
	// an unclosed script element runs to the end of the text
	scriptElementPattern  = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?(<\s*/\s*script\s*>|$)`)
	strayScriptTagPattern = regexp.MustCompile(`(?i)<\s*/?\s*script[^>]*>`)
)

func sanitizeText(s string) string {
	s = scriptElementPattern.ReplaceAllString(s, "")
	return strayScriptTagPattern.ReplaceAllString(s, "")
}
