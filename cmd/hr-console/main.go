package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/target/hr-console/config"
	"github.com/target/hr-console/internal/bootstrap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	envFile     string
	addr        string
	logLevel    string
	showVersion bool
	showHelp    bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2) //nolint:forbidigo // usage errors exit with status 2
	}
	if opts.showVersion {
		fmt.Fprintln(os.Stdout, "hr-console", version)
		return
	}

	ctx := context.Background()
	if err := run(ctx, opts); err != nil {
		slog.Default().ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func parseFlags(args []string, out io.Writer) (options, error) {
	var opts options
	flagSet := pflag.NewFlagSet("hr-console", pflag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flagSet.StringVar(&opts.addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print the version and exit")
	flagSet.BoolVarP(&opts.showHelp, "help", "h", false, "show help")
	flagSet.Usage = func() {
		fmt.Fprintf(out, "HR console: browser front end for the HR service.\n\nUsage:\n  hr-console [flags]\n\nFlags:\n%s", flagSet.FlagUsages())
	}

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if opts.showHelp {
		flagSet.Usage()
		return opts, pflag.ErrHelp
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return opts, nil
}

func run(ctx context.Context, opts options) error {
	cfg, err := bootstrap.LoadConfig(opts.envFile)
	if err != nil {
		return err
	}
	applyOverrides(&cfg, opts)

	logger := bootstrap.InitLogger(cfg.LogLevel)
	logStartupInfo(ctx, logger, &cfg)

	return bootstrap.Run(ctx, &bootstrap.RunConfig{Config: &cfg, Logger: logger})
}

func applyOverrides(cfg *config.AppConfig, opts options) {
	if opts.addr != "" {
		cfg.HTTP.Addr = opts.addr
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting hr console",
		"version", version,
		"addr", cfg.HTTP.Addr,
		"gateway", cfg.Gateway.BaseURL,
		"auth_mode", cfg.Auth.Mode,
		"session_backend", cfg.Session.Backend,
		"dev", cfg.IsDev,
	)
}
