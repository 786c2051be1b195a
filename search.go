package llmsdoc

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Search scoring weights.
const (
	PhraseScore  = 10
	WordScore    = 2
	HeadingScore = 5
)

// Defaults used when callers pass a non-positive limit.
const (
	DefaultSearchLimit     = 5
	DefaultContextSections = 3
)

// ContextSeparator joins sections assembled by RelevantContext.
const ContextSeparator = "\n\n---\n\n"

// SearchResult is a section matched by a search query.
// Path is inferred from the section and may not name a fetchable page.
type SearchResult struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Excerpt string `json:"excerpt"`
	Score   int    `json:"score"`
}

type scoredSection struct {
	section Section
	score   int
}

// rankSections drops zero scores and orders the rest by descending score.
// Equal scores keep document order.
func rankSections(sections []Section, score func(Section) int, limit int) []scoredSection {
	scored := make([]scoredSection, 0, len(sections))
	for _, s := range sections {
		if n := score(s); n > 0 {
			scored = append(scored, scoredSection{section: s, score: n})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if limit >= 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// SearchScore scores a section against a query: PhraseScore when the whole
// query appears, WordScore per occurrence of each query word, and
// HeadingScore when the query appears in the section's first line.
// Matching is case-insensitive.
func SearchScore(s Section, query string) int {
	text := strings.ToLower(s.Text)
	q := strings.ToLower(query)

	score := 0
	if strings.Contains(text, q) {
		score += PhraseScore
	}
	for _, word := range strings.Fields(q) {
		score += strings.Count(text, word) * WordScore
	}
	first, _, _ := strings.Cut(text, "\n")
	if strings.Contains(first, q) {
		score += HeadingScore
	}
	return score
}

// Search ranks sections against query and returns at most limit results.
func Search(sections []Section, query string, limit int) []SearchResult {
	ranked := rankSections(sections, func(s Section) int {
		return SearchScore(s, query)
	}, limit)

	results := make([]SearchResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, SearchResult{
			Title:   r.section.Title,
			Path:    InferPath(r.section.Title, r.section.Text),
			Excerpt: Excerpt(r.section.Text, query),
			Score:   r.score,
		})
	}
	return results
}

// ContextWords returns the distinct lower-cased words of a question that
// are longer than three characters, with surrounding punctuation removed.
func ContextWords(question string) []string {
	var words []string
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.TrimFunc(w, unicode.IsPunct)
		if utf8.RuneCountInString(w) <= 3 || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}

// ContextScore counts how many of words appear in the section.
// Repetition does not raise the score.
func ContextScore(s Section, words []string) int {
	text := strings.ToLower(s.Text)
	score := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			score++
		}
	}
	return score
}

// RelevantContext selects up to maxSections sections covering the words of
// question and joins them with ContextSeparator. It returns an empty string
// when nothing matches.
func RelevantContext(sections []Section, question string, maxSections int) string {
	words := ContextWords(question)
	ranked := rankSections(sections, func(s Section) int {
		return ContextScore(s, words)
	}, maxSections)

	parts := make([]string, 0, len(ranked))
	for _, r := range ranked {
		parts = append(parts, r.section.Text)
	}
	return strings.Join(parts, ContextSeparator)
}

// Excerpt returns a short window of section text around the first body
// line containing query. Without such a line it falls back to the first
// line with more than 20 characters, truncated to 150.
func Excerpt(text, query string) string {
	lines := strings.Split(text, "\n")
	q := []rune(strings.ToLower(query))

	if len(q) > 0 {
		for _, line := range lines[1:] {
			runes := []rune(line)
			idx := indexRunes(lowerRunes(runes), q)
			if idx < 0 {
				continue
			}
			start := max(0, idx-50)
			end := min(len(runes), idx+len(q)+50)
			return "..." + string(runes[start:end]) + "..."
		}
	}

	for _, line := range lines {
		if utf8.RuneCountInString(strings.TrimSpace(line)) > 20 {
			runes := []rune(line)
			return string(runes[:min(len(runes), 150)]) + "..."
		}
	}
	return ""
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func indexRunes(s, sub []rune) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases title and collapses every run of characters outside
// [a-z0-9] into a single hyphen, trimming hyphens at both ends.
func Slugify(title string) string {
	return strings.Trim(nonSlugRe.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

// InferPath guesses a documentation path for a section. It is advisory
// metadata only.
func InferPath(title, text string) string {
	slug := Slugify(title)
	switch {
	case strings.Contains(text, "API") || strings.Contains(title, "API"):
		return "api-reference/" + slug
	case strings.Contains(text, "guide") || strings.Contains(title, "Guide"):
		return "guides/" + slug
	case strings.Contains(text, "tutorial") || strings.Contains(title, "Tutorial"):
		return "tutorials/" + slug
	}
	return slug
}
