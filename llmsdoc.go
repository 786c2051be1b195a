// Package llmsdoc serves documentation published in the llms.txt format.
// It caches the index manifest, the full corpus and individual pages in a
// two-tier cache, splits the corpus into heading-delimited sections, and
// ranks those sections lexically for search and for question answering.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, openai/).
package llmsdoc
