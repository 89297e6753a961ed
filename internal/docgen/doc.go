// Package docgen orchestrates a documentation drift check and, when
// requested, a regeneration.
//
// The flow per target: collect source content, read the existing document,
// fingerprint (code, document, model), consult the drift cache, and only on
// a miss ask the model for a verdict. Verdicts are strict JSON with one
// repair round-trip when the model answers with something else. In fix mode
// a second completion produces per-field content, which the section merger
// applies onto the previous document; the caller writes the result.
//
// The engine never fails the workflow for cache trouble: corrupt or
// unwritable cache files surface as Report.Warnings and the run continues.
// Provider and scan failures are the only fatal errors here.
package docgen
