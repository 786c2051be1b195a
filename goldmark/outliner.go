// Package goldmark builds page outlines from markdown using goldmark.
package goldmark

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/fwojciec/llmsdoc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Ensure Outliner implements llmsdoc.Outliner at compile time.
var _ llmsdoc.Outliner = (*Outliner)(nil)

// Outliner lists ATX and setext headings of a markdown document. Headings
// inside code blocks are not headings to the parser, so they never appear.
// The parser is safe to share; each Parse call has its own state.
type Outliner struct {
	md goldmark.Markdown
}

// NewOutliner creates an Outliner that understands GitHub flavored markdown.
func NewOutliner() *Outliner {
	return &Outliner{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Outline returns every heading (H1-H6) in document order. Anchors are
// URL-safe and duplicates get numeric suffixes.
func (o *Outliner) Outline(markdown string) []llmsdoc.Heading {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}

	source := []byte(markdown)
	doc := o.md.Parser().Parse(text.NewReader(source))

	var headings []llmsdoc.Heading
	anchorCounts := make(map[string]int)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var sb strings.Builder
		inlineText(&sb, h, source)
		title := strings.TrimSpace(sb.String())

		base := anchor(title)
		a := base
		if count, exists := anchorCounts[base]; exists {
			a = base + "-" + strconv.Itoa(count)
			anchorCounts[base]++
		} else {
			anchorCounts[base] = 1
		}

		headings = append(headings, llmsdoc.Heading{
			Level:  h.Level,
			Title:  title,
			Anchor: a,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// inlineText appends the plain text of n's inline children to sb.
func inlineText(sb *strings.Builder, n ast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		default:
			inlineText(sb, c, source)
		}
	}
}

// anchor creates a URL-safe anchor from a title: lower case, runs of
// spaces and hyphens become one hyphen, other punctuation is dropped.
func anchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			prevHyphen = false
		case unicode.IsSpace(r) || r == '-':
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
