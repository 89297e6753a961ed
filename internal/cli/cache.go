package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/docsync/internal/config"
	"github.com/dshills/docsync/internal/drift"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the drift cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show drift cache contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("", buildOverrides())
		if err != nil {
			return err
		}
		cache, loadErr := drift.Load(cfg.Cache.Path)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", loadErr)
		}

		fmt.Fprintf(os.Stdout, "Cache file: %s\n", cfg.Cache.Path)
		fmt.Fprintf(os.Stdout, "Entries: %d / %d\n", cache.Len(), cache.MaxSize())
		for i, entry := range cache.Entries() {
			status := "in sync"
			if entry.DriftDetected {
				status = "drift"
			}
			key := entry.Key
			if len(key) > 12 {
				key = key[:12]
			}
			fmt.Fprintf(os.Stdout, "%3d. %s  %-7s  %s\n", i+1, key, status, entry.Rationale)
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all cached drift verdicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("", buildOverrides())
		if err != nil {
			return err
		}
		cache, _ := drift.Load(cfg.Cache.Path)
		cache.Clear()
		if err := cache.Save(cfg.Cache.Path); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Fprintln(os.Stdout, "Cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&flagCachePath, "cache-path", "", "Drift cache file path")
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
