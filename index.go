package llmsdoc

import (
	"regexp"
	"strings"
)

// DocIndex is the navigable structure of an llms.txt index manifest.
type DocIndex struct {
	Title    string         `json:"title"`
	Summary  string         `json:"summary"`
	Sections []IndexSection `json:"sections"`
}

// IndexSection is a "## " group of links in the index manifest.
type IndexSection struct {
	Header string      `json:"header"`
	Links  []IndexLink `json:"links"`
}

// IndexLink is a "- [title](url): description" entry.
type IndexLink struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// LinkCount returns the number of links across all sections.
func (idx *DocIndex) LinkCount() int {
	n := 0
	for _, s := range idx.Sections {
		n += len(s.Links)
	}
	return n
}

var indexLinkRe = regexp.MustCompile(`^- \[([^\]]+)\]\(([^)]+)\)(?:\s*:\s*(.+))?`)

// ParseIndex parses an index manifest line by line. A "# " line sets the
// title and starts the summary, which collects non-empty lines until the
// first "## " section. Link lines are attached to the open section;
// malformed link lines are skipped.
func ParseIndex(content string) *DocIndex {
	idx := &DocIndex{Sections: []IndexSection{}}

	var (
		current   *IndexSection
		inSummary bool
		summary   []string
	)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "# "):
			idx.Title = strings.TrimSpace(trimmed[2:])
			inSummary = true
		case strings.HasPrefix(trimmed, "## "):
			inSummary = false
			idx.Sections = append(idx.Sections, IndexSection{
				Header: strings.TrimSpace(trimmed[3:]),
				Links:  []IndexLink{},
			})
			current = &idx.Sections[len(idx.Sections)-1]
		case strings.HasPrefix(trimmed, "- [") && current != nil:
			m := indexLinkRe.FindStringSubmatch(trimmed)
			if m == nil {
				continue
			}
			current.Links = append(current.Links, IndexLink{
				Title:       m[1],
				URL:         m[2],
				Description: strings.TrimSpace(m[3]),
			})
		case inSummary && trimmed != "":
			summary = append(summary, trimmed)
		}
	}

	idx.Summary = strings.Join(summary, " ")
	return idx
}
