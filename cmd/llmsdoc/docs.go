package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/llmsdoc"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	content, err := deps.Docs.DocumentationIndex(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	if c.Structure {
		fmt.Fprintln(deps.Stdout, llmsdoc.FormatIndex(llmsdoc.ParseIndex(content)))
		return nil
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}

// Run executes the full command.
func (c *FullCmd) Run(deps *Dependencies) error {
	content, err := deps.Docs.FullDocumentation(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	if c.Format == "structured" {
		doc, err := deps.Docs.Page(deps.Ctx, c.Path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
			return err
		}
		return writeJSON(deps, doc)
	}

	content, err := deps.Docs.DocumentationPage(deps.Ctx, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Docs.SearchDocumentation(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if results == nil {
			results = []llmsdoc.SearchResult{}
		}
		return writeJSON(deps, results)
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q.\n", c.Query)
		return nil
	}

	fmt.Fprintln(deps.Stdout, llmsdoc.FormatSearchResults(results))
	return nil
}

// Run executes the context command.
func (c *ContextCmd) Run(deps *Dependencies) error {
	content, err := deps.Docs.RelevantContext(deps.Ctx, c.Question, c.Sections)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	if content == "" {
		fmt.Fprintln(deps.Stderr, "No relevant documentation found.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
