package pipeline

import (
	"regexp"
	"strings"
)

var (
	h2Pattern  = regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>`)
	tagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ExtractHeadings parses a blob that nominally holds H2-level section
// headings. Markup headings win when present: their inner text is returned
// with nested tags stripped, in document order. Otherwise the blob is treated
// as plain text, one heading per non-empty line. Empty input yields nil,
// which is the writing stage's precondition failure trigger.
func ExtractHeadings(text string) []string {
	if matches := h2Pattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		headings := make([]string, 0, len(matches))
		for _, m := range matches {
			headings = append(headings, strings.TrimSpace(tagPattern.ReplaceAllString(m[1], "")))
		}
		return headings
	}

	var headings []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			headings = append(headings, trimmed)
		}
	}
	return headings
}
