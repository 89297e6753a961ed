package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dshills/docsync/internal/config"
	"github.com/dshills/docsync/internal/docgen"
	"github.com/dshills/docsync/internal/drift"
	"github.com/dshills/docsync/internal/output"
	"github.com/dshills/docsync/internal/providers"
)

// maxConcurrentTargets bounds parallel drift checks.
const maxConcurrentTargets = 4

// Shared flags
var (
	flagProvider     string
	flagModel        string
	flagDocFile      string
	flagExclude      string
	flagFormat       string
	flagOut          string
	flagCachePath    string
	flagNoCache      bool
	flagSectionLevel int
	flagFix          bool
)

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagDocFile, "doc", "", "Documentation file name (default: MODULE.md)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Report output path (default: stdout)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Extra exclude globs (comma-separated)")
	cmd.Flags().StringVar(&flagCachePath, "cache-path", "", "Drift cache file path")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Disable the drift cache")
	cmd.Flags().IntVar(&flagSectionLevel, "section-level", 0, "Heading level of managed sections")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagDocFile != "" {
		m["docFile"] = flagDocFile
	}
	if flagCachePath != "" {
		m["cachePath"] = flagCachePath
	}
	if flagNoCache {
		m["noCache"] = "true"
	}
	if flagSectionLevel > 0 {
		m["sectionLevel"] = fmt.Sprintf("%d", flagSectionLevel)
	}
	return m
}

var checkCmd = &cobra.Command{
	Use:   "check [path ...]",
	Short: "Check documentation for drift",
	Long:  "Check compares each target's source against its documentation file and reports whether the documentation has drifted. With --fix, stale documentation is regenerated in place.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTargets(args, flagFix)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [path ...]",
	Short: "Regenerate stale documentation",
	Long:  "Update behaves like check --fix: stale or missing documentation is regenerated and written, managed sections replaced and custom sections preserved.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTargets(args, true)
	},
}

func init() {
	addCommonFlags(checkCmd)
	checkCmd.Flags().BoolVar(&flagFix, "fix", false, "Regenerate stale documentation in place")
	addCommonFlags(updateCmd)
}

func runTargets(args []string, fix bool) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	cfg, err := config.Load("", buildOverrides())
	if err != nil {
		exitCode = ExitUsageError
		return err
	}
	if flagExclude != "" {
		cfg.Scan.Exclude = append(cfg.Scan.Exclude, splitComma(flagExclude)...)
	}

	gen, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return nil
	}

	var cache *drift.Cache
	if cfg.Cache.Enabled {
		loaded, loadErr := drift.Load(cfg.Cache.Path)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (starting with an empty cache)\n", loadErr)
		}
		cache = loaded
	}

	eng := docgen.New(cfg, gen, cache)
	reports, runErr := checkAll(context.Background(), eng, args, fix)

	drifted := false
	for _, report := range reports {
		if report == nil {
			continue
		}
		if fix && report.Merged != "" {
			if writeErr := os.WriteFile(report.DocPath, []byte(report.Merged), 0o644); writeErr != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", report.DocPath, writeErr)
				exitCode = ExitRuntimeError
				return nil
			}
		}
		if err := output.WriteReport(report, flagFormat, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if report.Verdict.DriftDetected {
			drifted = true
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		if providers.IsAuthError(runErr) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitRuntimeError
		}
		return nil
	}
	if drifted && !fix {
		exitCode = ExitDrift
	}
	return nil
}

// checkAll runs the engine over every target with bounded concurrency,
// preserving target order in the result. The first error wins; remaining
// reports are still returned so partial output is not lost.
func checkAll(ctx context.Context, eng *docgen.Engine, targets []string, fix bool) ([]*docgen.Report, error) {
	reports := make([]*docgen.Report, len(targets))
	errs := make([]error, len(targets))

	sem := make(chan struct{}, maxConcurrentTargets)
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			var report *docgen.Report
			var err error
			if fix {
				report, err = eng.Fix(ctx, target)
			} else {
				report, err = eng.Check(ctx, target)
			}
			reports[i], errs[i] = report, err
		}(i, target)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
