// Package main provides the entry point for cachesim.
// cachesim is a functional, trace-driven simulator for a unified,
// write-back, write-allocate, single cache hierarchy.
//
// For the full CLI, use: go run ./cmd/cachesim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("cachesim - Trace-Driven Cache Simulator")
	fmt.Println("")
	fmt.Println("Usage: cachesim [flags] <trace-file> <cache-size> <associativity> <block-size>")
	fmt.Println("")
	fmt.Println("Flags:")
	fmt.Println("  --config              Path to a cache geometry JSON file")
	fmt.Println("  --address-width       Address width in bits (default 32)")
	fmt.Println("  --legacy-replacement  Treat set-associative misses as fatal")
	fmt.Println("  -v                    Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/cachesim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/cachesim' instead.")
	}
}
