package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	"github.com/ironsheep/attention-cta/internal/config"
	"github.com/ironsheep/attention-cta/internal/httpapi"
	"github.com/ironsheep/attention-cta/internal/logging"
	"github.com/ironsheep/attention-cta/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("attention-cta - attention heatmaps and CTA detection for ad creatives")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  attention-cta analyze <image>   Analyze one image and print the result")
	fmt.Println("  attention-cta video <file>      Sample key-frames and analyze each")
	fmt.Println("  attention-cta mcp               Run the MCP server on stdin/stdout")
	fmt.Println("  attention-cta serve             Run the HTTP API")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  ATTENTION_CONFIG=<file>        JSON configuration file")
	fmt.Println("  ATTENTION_LOG_LEVEL=debug      Enable debug logging")
	fmt.Println("  ATTENTION_OUTPUT_DIR=<dir>     Write heatmap, spotlight and CTA artifacts")
	fmt.Println("  ATTENTION_HTTP_ADDR=:8080      HTTP listen address")
	fmt.Println("  ATTENTION_REDIS_ADDR=<addr>    Keep jobs in Redis instead of memory")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("attention-cta %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		usage()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		logging.Error(logging.Fields{"command": os.Args[1], "error": err.Error()}, "command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch command {
	case "analyze":
		if len(args) != 1 {
			return errors.New("usage: attention-cta analyze <image>")
		}
		analyzer, err := buildAnalyzer(cfg)
		if err != nil {
			return err
		}
		job, err := analyzer.AnalyzeFile(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(job.Result)

	case "video":
		if len(args) != 1 {
			return errors.New("usage: attention-cta video <file>")
		}
		analyzer, err := buildAnalyzer(cfg)
		if err != nil {
			return err
		}
		report, err := analyzer.AnalyzeVideoFile(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(report)

	case "mcp":
		analyzer, err := buildAnalyzer(cfg)
		if err != nil {
			return err
		}
		jobs, closeJobs, err := buildStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeJobs()

		logging.Debug(logging.Fields{"version": Version, "built": BuildTime, "commit": GitCommit}, "starting MCP server")
		return server.New(analyzer, jobs, server.WithVersion(Version)).Run(ctx)

	case "serve":
		analyzer, err := buildAnalyzer(cfg)
		if err != nil {
			return err
		}
		jobs, closeJobs, err := buildStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeJobs()

		opts := httpapi.DefaultOptions()
		opts.BodyLimitMB = cfg.Server.MaxUploadMB
		app := httpapi.New(analyzer, jobs, opts)

		go func() {
			<-ctx.Done()
			if err := app.Shutdown(); err != nil {
				logging.Warn(logging.Fields{"error": err.Error()}, "http shutdown failed")
			}
		}()

		logging.Info(logging.Fields{"addr": cfg.Server.Addr, "version": Version}, "http server listening")
		return app.Listen(cfg.Server.Addr)

	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printJSON(v interface{}) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
