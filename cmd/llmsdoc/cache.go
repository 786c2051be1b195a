package main

import (
	"fmt"

	"github.com/fwojciec/llmsdoc"
)

// Run executes the cache stats command.
func (c *CacheStatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Store.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps, stats)
	}

	fmt.Fprintf(deps.Stdout, "memory: %d entries, %d bytes\n", stats.MemoryEntries, stats.MemorySize)
	fmt.Fprintf(deps.Stdout, "disk:   %d entries, %d bytes\n", stats.DiskEntries, stats.DiskSize)
	return nil
}

// Run executes the cache prune command.
func (c *CachePruneCmd) Run(deps *Dependencies) error {
	before, err := deps.Store.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	if err := deps.Store.Prune(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	after, err := deps.Store.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Pruned %d disk entries\n", before.DiskEntries-after.DiskEntries)
	return nil
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if err := deps.Store.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Cache cleared")
	return nil
}

// Run executes the cache warm command.
func (c *CacheWarmCmd) Run(deps *Dependencies) error {
	if deps.Warmer == nil {
		err := llmsdoc.Errorf(llmsdoc.EINTERNAL, "cache warming unavailable")
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	if err := deps.Warmer.Warm(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Cache warmed")
	return nil
}
