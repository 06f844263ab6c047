package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/idkit/aadhaar-extract/internal/config"
	"github.com/idkit/aadhaar-extract/internal/ocr"
	"github.com/idkit/aadhaar-extract/internal/pdftext"
	"github.com/idkit/aadhaar-extract/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// newLogger configures the process-wide structured logger.
func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger := newLogger(cfg.LogLevel)

	// The rasterizer resolves the pdftoppm binary up front so a missing
	// tool fails the process at startup instead of mid-request.
	rasterizer, err := pdftext.NewPopplerRasterizer(cfg.PopplerPath, cfg.RasterDPI)
	if err != nil {
		logger.WithError(err).Fatal("pdftoppm is not available")
	}

	engine := ocr.NewEngine(cfg.OCRLanguages)
	acquirer := pdftext.NewAcquirer(rasterizer, engine, logger)

	srv, err := server.NewServer(cfg, acquirer, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.WithError(err).Fatal("server exited with error")
	}

	logger.Info("server stopped")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Aadhaar Extract\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
