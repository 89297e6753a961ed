// Package drift provides the documentation drift cache: a bounded,
// insertion-ordered store of drift verdicts keyed by a content fingerprint.
//
// The fingerprint is a SHA-256 digest over the scanned code content, the
// existing document content, and the model identifier, each length-prefixed
// so distinct input triples can never produce the same byte sequence. A hit
// means the exact same code, document, and model have already been judged and
// the expensive LLM verdict can be reused.
//
// The cache is FIFO-bounded: when a new key would exceed capacity the
// earliest-inserted entry is evicted. Reads never refresh eviction order, and
// re-inserting an existing key keeps its original position. A single mutex
// guards the map and the order queue; disk serialization happens outside the
// lock so slow I/O never blocks lookups.
//
// Persistence is best-effort. A missing cache file yields an empty
// cache; a corrupt one yields an empty cache plus an ErrCorrupt advisory.
// Saves go through an atomic write-then-rename so a crash mid-write can never
// leave a truncated file behind. Nothing in this package ever makes the
// surrounding workflow fail.
package drift
