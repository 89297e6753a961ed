package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Default size caps. Oversized files are skipped; the total cap truncates
// the scan rather than failing it.
const (
	DefaultMaxFileBytes  = 131072
	DefaultMaxTotalBytes = 524288
)

// defaultSkipDirs are directory names never worth scanning.
var defaultSkipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"target":       true,
}

// defaultInclude is the extension allowlist used when the caller supplies
// no include globs.
var defaultInclude = []string{
	"*.go", "*.py", "*.ts", "*.tsx", "*.js", "*.jsx",
	"*.rs", "*.java", "*.kt", "*.rb", "*.c", "*.h", "*.cpp",
	"*.sh", "*.sql", "*.proto",
}

// Options controls a scan.
type Options struct {
	// Include is a list of base-name globs; empty selects the default
	// source-file allowlist.
	Include []string
	// Exclude is a list of globs matched against both the relative path
	// and the base name.
	Exclude []string
	// MaxFileBytes skips any single file larger than this.
	MaxFileBytes int
	// MaxTotalBytes stops the scan once the collected content reaches it.
	MaxTotalBytes int
	// Redact strips secret-looking values from collected content.
	Redact bool
}

// Result is the outcome of one scan.
type Result struct {
	// Content is the concatenated file contents with "--- path ---"
	// markers, in lexical path order.
	Content string
	// Files lists the relative paths that contributed content.
	Files []string
	// Truncated reports that MaxTotalBytes stopped the scan early.
	Truncated bool
}

// Collect scans target, which may be a single file or a directory tree, and
// returns the concatenated content used for fingerprinting and prompts.
func Collect(target string, opts Options) (Result, error) {
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = DefaultMaxFileBytes
	}
	if opts.MaxTotalBytes <= 0 {
		opts.MaxTotalBytes = DefaultMaxTotalBytes
	}
	include := opts.Include
	if len(include) == 0 {
		include = defaultInclude
	}

	info, err := os.Stat(target)
	if err != nil {
		return Result{}, fmt.Errorf("stat target: %w", err)
	}

	var res Result
	var b strings.Builder

	addFile := func(path, rel string, size int64) error {
		if size > int64(opts.MaxFileBytes) {
			return nil
		}
		if b.Len()+int(size) > opts.MaxTotalBytes {
			res.Truncated = true
			return fs.SkipAll
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		content := string(data)
		if opts.Redact {
			content = redactSecrets(content)
		}
		fmt.Fprintf(&b, "--- %s ---\n%s\n", filepath.ToSlash(rel), content)
		res.Files = append(res.Files, filepath.ToSlash(rel))
		return nil
	}

	if !info.IsDir() {
		if err := addFile(target, filepath.Base(target), info.Size()); err != nil && err != fs.SkipAll {
			return Result{}, err
		}
		res.Content = b.String()
		return res, nil
	}

	walkErr := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(target, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if rel != "." && (defaultSkipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if !matchAny(include, rel) || matchAny(opts.Exclude, rel) {
			return nil
		}
		fi, statErr := d.Info()
		if statErr != nil {
			return nil
		}
		return addFile(path, rel, fi.Size())
	})
	if walkErr != nil && walkErr != fs.SkipAll {
		return Result{}, fmt.Errorf("scanning %s: %w", target, walkErr)
	}

	res.Content = b.String()
	return res, nil
}

// matchAny reports whether the relative path matches any glob. Globs are
// tried against the full relative path first, then the base name, so both
// "internal/*.go" and "*.go" behave as expected.
func matchAny(globs []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range globs {
		if ok, err := filepath.Match(g, rel); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(g, filepath.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}
