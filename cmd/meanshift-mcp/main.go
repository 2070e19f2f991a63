package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/meanshift-mcp/internal/server"
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
			fmt.Printf("meanshift-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("meanshift-mcp - MCP server for mean shift image segmentation")
			fmt.Println()
			fmt.Println("Usage: meanshift-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  MEANSHIFT_MCP_LOG_LEVEL=debug|info|warn|error    Log level (default info)")
			fmt.Println("  MEANSHIFT_MCP_WORKERS=N                          Goroutines per segmentation (default: CPU count)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	logger := newLogger(os.Getenv("MEANSHIFT_MCP_LOG_LEVEL"))
	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("starting meanshift-mcp")

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithVersion(Version),
	}
	if v := os.Getenv("MEANSHIFT_MCP_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn().Str("value", v).Msg("ignoring invalid MEANSHIFT_MCP_WORKERS")
		} else {
			opts = append(opts, server.WithWorkers(n))
		}
	}

	srv := server.New(opts...)
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// newLogger writes human-readable logs to stderr (stdout is for MCP protocol).
// Unknown or empty levels fall back to info.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
