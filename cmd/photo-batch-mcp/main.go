package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/photo-batch-mcp/internal/config"
	"github.com/ironsheep/photo-batch-mcp/internal/server"
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
			fmt.Printf("%s %s\n", server.Name, config.NormalizeVersion(Version))
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()
	if cfg.Debug() {
		log.Printf("Photo Batch MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Config: preview=%d workers=%d jpeg=%d output=%s",
			cfg.PreviewSize, cfg.ExportWorkers, cfg.JPEGQuality, cfg.OutputDir)
	}

	srv := server.New(cfg, Version)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Printf("%s - MCP server for batch photo editing\n", server.Name)
	fmt.Println()
	fmt.Printf("Usage: %s [options]\n", server.Name)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from ./.env):")
	fmt.Printf("  %s=debug       Enable debug logging\n", config.EnvLogLevel)
	fmt.Printf("  %s=N        Preview tile edge length (default %d)\n", config.EnvPreviewSize, config.DefaultPreviewSize)
	fmt.Printf("  %s=N     Concurrent export renders (default: CPU count)\n", config.EnvExportWorkers)
	fmt.Printf("  %s=DIR        Default export directory (default %s)\n", config.EnvOutputDir, config.DefaultOutputDir)
	fmt.Printf("  %s=N       JPEG quality 1-100 (default %d)\n", config.EnvJPEGQuality, config.DefaultJPEGQuality)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
