package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/trace"
)

func run(cmd *cobra.Command, args []string) error {
	config, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	var opts []cache.Option
	if legacyReplacement {
		opts = append(opts, cache.WithLegacyReplacement())
	}

	c, err := cache.New(config, opts...)
	if err != nil {
		return err
	}

	tf, err := trace.Open(args[0])
	if err != nil {
		return err
	}
	defer tf.Close()

	if err := simulate(c, &tf.Reader, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), c.Stats())
	return nil
}

// resolveConfig builds the cache geometry from either the --config file or
// the positional size/associativity/block-size arguments.
func resolveConfig(cmd *cobra.Command, args []string) (cache.Config, error) {
	if configPath != "" {
		if len(args) != 1 {
			return cache.Config{}, fmt.Errorf(
				"--config replaces the geometry arguments; expected only a trace file, got %d arguments",
				len(args))
		}

		config, err := cache.LoadConfig(configPath)
		if err != nil {
			return cache.Config{}, err
		}
		if cmd.Flags().Changed("address-width") {
			config.AddressWidth = addressWidth
		}
		return config, nil
	}

	if len(args) != 4 {
		return cache.Config{}, fmt.Errorf(
			"expected a trace file, cache size, associativity, and block size, got %d arguments",
			len(args))
	}

	size, err := geometryArg("cache size", args[1])
	if err != nil {
		return cache.Config{}, err
	}
	associativity, err := geometryArg("cache associativity", args[2])
	if err != nil {
		return cache.Config{}, err
	}
	blockSize, err := geometryArg("cache block size", args[3])
	if err != nil {
		return cache.Config{}, err
	}

	return cache.Config{
		Size:          size,
		Associativity: associativity,
		BlockSize:     blockSize,
		AddressWidth:  addressWidth,
	}, nil
}

func geometryArg(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s (%s) must be a number", name, value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s (%d) must be greater than 0", name, n)
	}
	return n, nil
}

// simulate replays every reference of the trace against the cache.
// Malformed trace lines are reported to errOut and skipped; an engine error
// (the legacy replacement gate) aborts the run.
func simulate(c *cache.Cache, r *trace.Reader, out, errOut io.Writer) error {
	for {
		ref, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		var parseErr *trace.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintf(errOut, "WARNING: skipping %v\n", parseErr)
			continue
		}
		if err != nil {
			return err
		}

		result, err := c.Access(ref)
		if err != nil {
			return err
		}

		if verbose && !result.Hit {
			fmt.Fprintf(out, "Miss: %x\n", ref.Address)
		}
	}
}

// printReport writes the final statistics in the classic cachesim format.
func printReport(w io.Writer, stats cache.Stats) {
	fmt.Fprintf(w, "Total number of memory references is (%d)\n", stats.TotalReferences())
	fmt.Fprintf(w, "Total number of hits is (%d)\n", stats.TotalHits())
	fmt.Fprintf(w, "The hit ratio is (%f)\n", stats.HitRatio())

	if verbose {
		fmt.Fprintf(w, "Instruction references: %d, misses: %d\n",
			stats.InstructionReferences, stats.InstructionMisses)
		fmt.Fprintf(w, "Data read references: %d, misses: %d\n",
			stats.DataReadReferences, stats.DataReadMisses)
		fmt.Fprintf(w, "Data write references: %d, misses: %d\n",
			stats.DataWriteReferences, stats.DataWriteMisses)
	}
}
