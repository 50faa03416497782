package stats

import (
	"regexp"
	"strings"
)

var reNoteURL = regexp.MustCompile(`https?://[^\s<>"'()（）]+`)

// NoteLinks extracts the http(s) URLs embedded in a report note, in order,
// without duplicates. Trailing sentence punctuation is trimmed.
func NoteLinks(note string) []string {
	var links []string
	seen := make(map[string]bool)
	for _, m := range reNoteURL.FindAllString(note, -1) {
		m = strings.TrimRight(m, ".,;:!?、。")
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		links = append(links, m)
	}
	return links
}
