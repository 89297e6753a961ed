// Docsync is a CLI that keeps module documentation in sync with the code
// it describes.
//
// It scans a module's source, asks an LLM provider whether the documentation
// has drifted, and regenerates managed sections while preserving hand-written
// ones. Drift verdicts are cached by content fingerprint so unchanged modules
// never trigger a second provider call.
//
// Usage:
//
//	docsync check                 # report drift for the current directory
//	docsync check ./pkg/parser    # report drift for a specific module
//	docsync check --fix           # regenerate stale documentation in place
//	docsync update ./pkg/parser   # same as check --fix
//	docsync cache show            # inspect cached drift verdicts
//	docsync config init           # write a default docsync.toml
//
// See https://github.com/dshills/docsync for full documentation.
package main
