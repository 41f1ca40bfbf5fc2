package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/bootheap/cmd/heapexplorer/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args := os.Args[1:]
	debugMode := false
	memoryBytes := uint64(16 << 20)

	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) > 0 {
		switch filteredArgs[0] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("heapexplorer %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		default:
			n, err := strconv.ParseUint(filteredArgs[0], 0, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: bad memory size %q\n", filteredArgs[0])
				printUsage()
				os.Exit(1)
			}
			memoryBytes = n
		}
	}

	logger.Info("starting heapexplorer", "memory", memoryBytes, "debug", debugMode)

	m, err := NewModel(memoryBytes)
	if err != nil {
		logger.Error("boot failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			// Cleanup is best effort
			logger.Warn("error closing machine", "error", err)
		}
	}

	logger.Info("heapexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: heapexplorer [options] [memory-bytes]\n")
	fmt.Fprintf(os.Stderr, "Try 'heapexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("heapexplorer - Interactive TUI for the boot heap")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  heapexplorer [options] [memory-bytes]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Boots a simulated machine, brings the heap up over its conventional")
	fmt.Println("  RAM, and opens an interactive view of the block chain.")
	fmt.Println()
	fmt.Println("  Features:")
	fmt.Println("    - Split-pane layout (block chain + block detail)")
	fmt.Println("    - Keyboard navigation (vim-style keys supported)")
	fmt.Println("    - Allocate and free blocks interactively")
	fmt.Println("    - Hexdump of each block's data region")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Navigate the chain")
	fmt.Println("    tab         Switch between chain and detail panes")
	fmt.Println("    a           Allocate a block")
	fmt.Println("    f           Free the selected block")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.heapexplorer/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  heapexplorer")
	fmt.Println("  heapexplorer 33554432")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'bootctl' command instead.")
}
