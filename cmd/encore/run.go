package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	flag "github.com/spf13/pflag"

	encore "github.com/alnah/go-encore"
	"github.com/alnah/go-encore/internal/config"
	"github.com/alnah/go-encore/internal/fileutil"
	"github.com/alnah/go-encore/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrNoInput        = errors.New("no input specified")
	ErrUnknownCommand = errors.New("unknown command")
)

// run dispatches args (without the program name) to a command and returns
// the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]

	var err error
	switch cmd {
	case "render":
		err = runRenderCmd(ctx, rest, env)
	case "check":
		err = runCheckCmd(ctx, rest, env)
	case "integrity":
		err = runIntegrityCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "encore %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "%v: %s\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		printCommandUsage(cmd, env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(env.Stderr, "Run 'encore help %s' for usage.\n", cmd)
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		return err
	}
	return runRender(ctx, positional, flags, env)
}

func runCheckCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args)
	if err != nil {
		return err
	}
	return runCheck(ctx, positional, flags, env)
}

func runIntegrityCmd(args []string, env *Environment) error {
	flags, positional, err := parseIntegrityFlags(args)
	if err != nil {
		return err
	}
	return runIntegrity(positional, flags, env)
}

// loadConfig builds the effective configuration:
// CLI flags > env vars > config file > defaults.
// Only the flags shared by all commands are merged here.
func loadConfig(common *commonFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			hint := ""
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
	}

	applyEnvConfig(envCfg, cfg)

	if common.entrypoints != "" {
		cfg.Entrypoints = common.entrypoints
	}
	if common.manifest != "" {
		cfg.Manifest = common.manifest
	}

	return cfg, nil
}

// newResolver creates a Resolver for cfg. In verbose mode document load
// failures are logged to stderr.
func newResolver(cfg *config.Config, verbose bool, env *Environment) *encore.Resolver {
	var opts []encore.Option
	if cfg.Entrypoints != "" {
		opts = append(opts, encore.WithEntrypointsFile(cfg.Entrypoints))
	}
	if cfg.Manifest != "" {
		opts = append(opts, encore.WithManifestFile(cfg.Manifest))
	}
	if verbose {
		handler := slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, encore.WithLogger(slog.New(handler)))
	}
	return encore.New(opts...)
}

// documentError decorates a document load failure with a hint.
func documentError(err error, path, envVar string) error {
	return fmt.Errorf("%w%s", err, hints.ForDocumentUnavailable(path, envVar))
}
