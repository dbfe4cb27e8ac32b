package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-terse/internal/fileutil"
	"github.com/alnah/go-terse/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args[1] and returns the exit code.
// A bare source file or "-" is shorthand for convert.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && (looksLikeSource(cmd) || cmd == stdinPath) {
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-terse %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runConvertCmd parses convert flags, sets up logging and signals, and runs
// the conversion.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	logger := logging.New(env.Stderr, logging.VerbosityFromFlags(flags.common.quiet, flags.common.verbose))
	setMaxProcs(logger)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, hintContext{
			indentWidth: flags.compile.indent,
			configName:  flags.common.config,
			assetPath:   flags.assets.assetPath,
			getenv:      env.Getenv,
		}))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// The error is ignored: maxprocs.Set only fails if GOMAXPROCS is invalid,
// in which case the runtime default applies.
func setMaxProcs(logger zerolog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug().Msgf(format, args...)
	}))
}

// isCommand reports whether s names a subcommand. Case-sensitive.
func isCommand(s string) bool {
	switch s {
	case "convert", "version", "help":
		return true
	default:
		return false
	}
}

// looksLikeSource reports whether s is a path to a terse source file.
func looksLikeSource(s string) bool {
	return !strings.HasPrefix(s, "-") && fileutil.HasExtension(s, sourceExt)
}
