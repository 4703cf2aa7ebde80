package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rshade/tickwatch/internal/config"
	"github.com/rshade/tickwatch/internal/engine/cache"
	"github.com/rshade/tickwatch/internal/logging"
)

// Cache status accents.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	freshStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	staleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// NewCacheStatusCmd creates the cache status command: snapshot location,
// per-entry ages, and fresh/stale counts against the configured interval.
func NewCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cache snapshot and entry freshness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCacheStatus(cmd)
		},
	}
}

func executeCacheStatus(cmd *cobra.Command) error {
	ctx := cmd.Context()
	settings := settingsFromContext(ctx)
	configDir := configDirFromContext(ctx)

	store := cache.NewFileStore(config.CachePath(configDir)).
		WithLogger(logging.FromContext(ctx))

	cmd.Printf("Cache file: %s\n", store.Path())
	cmd.Printf("Caching enabled: %t\n", settings.Cache.Enabled)
	cmd.Printf("Freshness interval: %dm\n", settings.Cache.Interval)

	snapshot := store.Load()
	if len(snapshot) == 0 {
		cmd.Println("Cache is empty.")
		return nil
	}

	now := time.Now()
	interval := settings.CacheInterval()
	fresh := 0

	cmd.Printf("\nEntries (%d):\n", len(snapshot))
	for _, symbol := range snapshot.Symbols() {
		entry := snapshot[symbol]
		age := cache.FormatDuration(cache.Age(entry, now))
		if cache.IsFresh(entry, interval, now) {
			fresh++
			cmd.Printf("  %-8s %s  %s\n", symbol, age, freshStyle.Render("fresh"))
		} else {
			cmd.Printf("  %-8s %s  %s\n", symbol, age, staleStyle.Render("stale"))
		}
	}
	cmd.Printf("\n%d fresh, %d stale\n", fresh, len(snapshot)-fresh)

	return nil
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the cache snapshot file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCacheClear(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete without confirmation")

	return cmd
}

func executeCacheClear(cmd *cobra.Command, force bool) error {
	ctx := cmd.Context()
	configDir := configDirFromContext(ctx)
	store := cache.NewFileStore(config.CachePath(configDir)).
		WithLogger(logging.FromContext(ctx))

	if !force {
		result := Confirm(cmd.OutOrStdout(), os.Stdin,
			fmt.Sprintf("Delete %s?", store.Path()))
		if !result.Accepted {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return err
	}
	cmd.Println("Cache cleared.")
	return nil
}
