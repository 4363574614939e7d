package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/rushhour/heuristic"
	"github.com/katalvlaran/rushhour/internal/ctxlog"
	"github.com/katalvlaran/rushhour/report"
)

// Version is reported by --version.
var Version = "dev"

// ExitError is an error carrying a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// New returns the root command. Puzzles given as "-" are read from in;
// results go to out, logs and diagnostics to errOut.
func New(in io.Reader, out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "rushhour",
		Usage:     "solve Rush Hour sliding-block puzzles",
		Version:   Version,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level: debug, info, warn or error",
				Sources: cli.EnvVars("RUSHHOUR_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "log format: text or json",
				Sources: cli.EnvVars("RUSHHOUR_LOG_FORMAT"),
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			solveCommand(),
			batchCommand(),
			analyzeCommand(),
			mcpCommand(),
		},
	}
}

// setupLogging validates the log flags and stores the logger in the context.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := strings.ToLower(cmd.String("log-level"))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return ctx, usageError("invalid log-level %q: must be debug, info, warn or error", level)
	}
	format := strings.ToLower(cmd.String("log-format"))
	if format != "text" && format != "json" {
		return ctx, usageError("invalid log-format %q: must be text or json", format)
	}

	logger := ctxlog.New(level, format, cmd.Root().ErrWriter)
	logger.Debug("Logger configured.", "level", level, "format", format)

	return ctxlog.WithLogger(ctx, logger), nil
}

// solverFlags are shared by the solve and batch commands.
func solverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "heuristic",
			Value:   heuristic.Default,
			Usage:   "heuristic: " + strings.Join(heuristic.Names(), ", "),
			Sources: cli.EnvVars("RUSHHOUR_HEURISTIC"),
		},
		&cli.IntFlag{
			Name:    "max-nodes",
			Usage:   "per-puzzle node budget, 0 for none",
			Sources: cli.EnvVars("RUSHHOUR_MAX_NODES"),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "per-puzzle time limit, 0 for none",
			Sources: cli.EnvVars("RUSHHOUR_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "concurrent solves (default: number of CPUs)",
			Sources: cli.EnvVars("RUSHHOUR_WORKERS"),
		},
		&cli.StringFlag{
			Name:    "format",
			Value:   string(report.Text),
			Usage:   "output format: text, json or yaml",
			Sources: cli.EnvVars("RUSHHOUR_FORMAT"),
		},
	}
}
