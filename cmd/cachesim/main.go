// Package main provides the cachesim command line interface.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath        string
	addressWidth      int
	legacyReplacement bool
	verbose           bool
)

var rootCmd = &cobra.Command{
	Use:   "cachesim [flags] <trace-file> <cache-size> <associativity> <block-size>",
	Short: "Trace-driven simulator for a single write-back, write-allocate cache",
	Long: `cachesim replays a memory reference trace against a single cache ` +
		`memory and reports hit/miss statistics. The cache geometry is given ` +
		`either as positional arguments or through a JSON config file.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"Path to a cache geometry JSON file (replaces the geometry arguments)")
	rootCmd.Flags().IntVar(&addressWidth, "address-width", 32,
		"Address width in bits")
	rootCmd.Flags().BoolVar(&legacyReplacement, "legacy-replacement", false,
		"Treat set-associative misses as fatal instead of running LRU replacement")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Report per-kind statistics and print each miss")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
