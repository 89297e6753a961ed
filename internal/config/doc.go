// Package config loads and merges docsync configuration.
//
// The effective configuration is built in layers: compiled defaults, then a
// docsync.toml file (working directory first, then the user config
// directory), then DOCSYNC_* environment variables, then CLI flag overrides.
// TOML unmarshals over the defaults, so an absent key keeps its default and
// a present key always wins, including booleans.
//
// A missing config file is not an error; a malformed one is, since silently
// ignoring a file the user wrote hides real mistakes.
package config
