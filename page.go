package llmsdoc

import "time"

// Heading is a markdown heading of a documentation page.
type Heading struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Outliner lists the headings of a markdown document in order.
type Outliner interface {
	Outline(markdown string) []Heading
}

// PageDocument is the structured rendition of a documentation page.
type PageDocument struct {
	Path      string    `json:"path"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	ETag      string    `json:"etag,omitempty"`
	Headings  []Heading `json:"headings,omitempty"`
}
