package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	// Machine sizing flags, shared by every command that boots one.
	memBytes uint64
	fbWidth  int
	fbHeight int
)

var rootCmd = &cobra.Command{
	Use:   "bootctl",
	Short: "Boot a simulated machine and exercise its memory runtime",
	Long: `bootctl boots a simulated firmware platform: it snapshots the memory
map, exits boot services, brings the heap up over conventional RAM, and lets
you inspect the result - memory map, allocator state, raw block contents, and
framebuffer output.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		Uint64Var(&memBytes, "mem", 16<<20, "Physical memory size in bytes")
	rootCmd.PersistentFlags().IntVar(&fbWidth, "width", 640, "Framebuffer width in pixels")
	rootCmd.PersistentFlags().IntVar(&fbHeight, "height", 480, "Framebuffer height in pixels")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
