package mock

import "github.com/fwojciec/llmsdoc"

var _ llmsdoc.Outliner = (*Outliner)(nil)

// Outliner is a mock implementation of llmsdoc.Outliner.
type Outliner struct {
	OutlineFn func(markdown string) []llmsdoc.Heading
}

func (o *Outliner) Outline(markdown string) []llmsdoc.Heading {
	return o.OutlineFn(markdown)
}
