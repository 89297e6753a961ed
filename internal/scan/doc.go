// Package scan collects source file content for prompt assembly.
//
// Scanning is shallow: it walks a target, filters by extension
// and path globs, caps per-file and total bytes, and concatenates the
// survivors with path markers. It has no understanding of the code it
// collects; that judgment belongs to the model.
//
// Walk order is lexical, so the concatenated output is deterministic for a
// given tree, which in turn keeps drift fingerprints stable across runs.
// Secrets are redacted from collected content before it ever reaches a
// prompt.
package scan
