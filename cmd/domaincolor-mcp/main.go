package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/domaincolor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("domaincolor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("domaincolor-mcp - MCP server for plotting complex functions")
			fmt.Println()
			fmt.Println("Usage: domaincolor-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug           Enable debug logging\n", server.EnvLogLevel)
			fmt.Printf("  %s=N                 Evaluation workers (0 = all CPUs, 1 = sequential)\n", server.EnvWorkers)
			fmt.Printf("  %s=N              Largest plot in samples (default %d)\n", server.EnvMaxPixels, server.DefaultMaxPixels)
			fmt.Printf("  %s=true            Call plotted functions one at a time\n", server.EnvSerialize)
			fmt.Printf("  %s=N      Plots rendered at once by complex_plot_batch\n", server.EnvBatchConcurrency)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.LoadConfig(os.Getenv)
	if cfg.Debug() {
		log.Printf("Domain Color MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Config: workers=%d max_pixels=%d serialize=%v batch=%d",
			cfg.Workers, cfg.MaxPixels, cfg.Serialize, cfg.BatchConcurrency)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
