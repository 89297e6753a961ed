// Package docmerge merges freshly generated documentation fields into an
// existing markdown document without destroying human-authored content.
//
// A document is scanned into heading-delimited sections at a configured
// heading level (default "##"). Sections whose normalized heading matches a
// template field are managed: they are reserved names, always rewritten from
// the newest generation. Everything else is custom: preserved verbatim, in
// its original relative order, after the managed sections. Content that
// appears before the first section heading (a title line, badges, a preamble
// paragraph) stays at the top of the merged document.
//
// The scanner is informal. It recognizes ATX headings outside
// fenced code blocks and nothing else; setext headings, HTML blocks, and the
// rest of the markdown grammar pass through untouched as section body text.
// Malformed input never fails a merge: a document with no recognizable
// headings is kept whole as a single custom block and the managed sections
// are appended after it.
//
// Merging is deterministic and idempotent. Section bodies are right-trimmed
// during assembly so repeated regenerations cannot accumulate blank lines,
// and sub-item values serialize in alphabetical name order so an unchanged
// regeneration produces a byte-identical document.
package docmerge
