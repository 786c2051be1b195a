package llmsdoc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinSectionLength is the trimmed length a section must exceed to be kept.
// Shorter sections are navigation stubs and other noise.
const MinSectionLength = 50

// headingRe matches a level 1-3 markdown heading line.
var headingRe = regexp.MustCompile(`^#{1,3}[ \t]+\S`)

// headingPrefixRe matches the hash marks and spacing in front of a heading title.
var headingPrefixRe = regexp.MustCompile(`^#+\s+`)

// Section is a heading-delimited slice of the full documentation corpus.
// Text starts with the heading line; the unheaded preamble of a corpus
// is a section whose Text starts with its first line of content.
type Section struct {
	Title string
	Text  string
}

// NewSection builds a Section from its text, taking the title from the
// first line with any heading marks removed.
func NewSection(text string) Section {
	first, _, _ := strings.Cut(text, "\n")
	return Section{
		Title: headingPrefixRe.ReplaceAllString(first, ""),
		Text:  text,
	}
}

// SplitSections splits a markdown corpus at every level 1-3 heading line.
// The result preserves document order and drops sections whose trimmed
// text is not longer than MinSectionLength characters.
func SplitSections(corpus string) []Section {
	var (
		sections []Section
		heading  string
		body     strings.Builder
	)

	flush := func() {
		text := strings.TrimSpace(body.String())
		body.Reset()
		if heading != "" {
			text = strings.TrimSpace(heading + "\n" + text)
		}
		if utf8.RuneCountInString(text) > MinSectionLength {
			sections = append(sections, NewSection(text))
		}
	}

	for _, line := range strings.Split(corpus, "\n") {
		if headingRe.MatchString(line) {
			flush()
			heading = strings.TrimRight(line, " \t\r")
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()

	return sections
}
