// Package cli implements the docsync command tree.
//
// Commands: check (drift verdict, optionally fixing in place), update
// (regenerate and write documentation), cache (inspect or clear the drift
// cache), config (init/show), and version. Exit codes are deterministic so
// CI can gate on them.
package cli
