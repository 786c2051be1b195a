package mock

import "github.com/fwojciec/llmsdoc"

var _ llmsdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of llmsdoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
