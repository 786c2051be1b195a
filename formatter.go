package llmsdoc

import (
	"fmt"
	"strings"
)

// FormatSearchResults formats search results for terminal display.
// Results are separated by blank lines.
func FormatSearchResults(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, r := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s (score %d)\n", i+1, r.Title, r.Score)
		fmt.Fprintf(&b, "   path: %s\n", r.Path)
		if r.Excerpt != "" {
			fmt.Fprintf(&b, "   %s", r.Excerpt)
		}
		parts = append(parts, strings.TrimRight(b.String(), "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// FormatIndex renders a parsed index as an indented outline.
func FormatIndex(idx *DocIndex) string {
	if idx == nil {
		return ""
	}

	var b strings.Builder
	if idx.Title != "" {
		b.WriteString(idx.Title)
		b.WriteByte('\n')
	}
	if idx.Summary != "" {
		b.WriteString(idx.Summary)
		b.WriteByte('\n')
	}
	for _, s := range idx.Sections {
		fmt.Fprintf(&b, "\n%s (%d)\n", s.Header, len(s.Links))
		for _, l := range s.Links {
			fmt.Fprintf(&b, "  - %s  %s\n", l.Title, l.URL)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
