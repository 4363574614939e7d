package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/rushhour/batch"
	"github.com/katalvlaran/rushhour/explore"
	"github.com/katalvlaran/rushhour/internal/ctxlog"
	"github.com/katalvlaran/rushhour/manifest"
	"github.com/katalvlaran/rushhour/mcpserver"
	"github.com/katalvlaran/rushhour/puzzle"
	"github.com/katalvlaran/rushhour/report"
)

func solveCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:    "board",
			Aliases: []string{"b"},
			Usage:   "solve this board instead of reading puzzle files",
		},
		&cli.BoolFlag{
			Name:  "verify",
			Usage: "replay every solution and fail if it does not reach the goal",
		},
		&cli.BoolFlag{
			Name:  "show",
			Usage: "print the board after every move of each solution",
		},
	}, solverFlags()...)

	return &cli.Command{
		Name:      "solve",
		Usage:     "solve puzzles from files, stdin (-) or --board",
		ArgsUsage: "[FILE|-]...",
		Flags:     flags,
		Action:    runSolve,
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "solve the puzzles of an HCL manifest",
		ArgsUsage: "MANIFEST",
		Flags:     solverFlags(),
		Action:    runBatch,
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "enumerate the reachable states of puzzles",
		ArgsUsage: "[FILE|-]...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "board",
				Aliases: []string{"b"},
				Usage:   "analyze this board instead of reading puzzle files",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "stop exploring beyond this many moves, 0 for none",
			},
			&cli.IntFlag{
				Name:    "max-states",
				Usage:   "stop after discovering this many states, 0 for none",
				Sources: cli.EnvVars("RUSHHOUR_MAX_STATES"),
			},
		},
		Action: runAnalyze,
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "serve the solver as MCP tools over stdio",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max-nodes",
				Value:   2_000_000,
				Usage:   "cap on the node budget of one solve, 0 for none",
				Sources: cli.EnvVars("RUSHHOUR_MAX_NODES"),
			},
			&cli.IntFlag{
				Name:    "max-states",
				Value:   1_000_000,
				Usage:   "cap on the states of one analysis, 0 for none",
				Sources: cli.EnvVars("RUSHHOUR_MAX_STATES"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "time limit of one tool call, 0 for none",
				Sources: cli.EnvVars("RUSHHOUR_TIMEOUT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := ctxlog.FromContext(ctx)
			srv := mcpserver.New(mcpserver.Config{
				Version:   Version,
				MaxNodes:  int(cmd.Int("max-nodes")),
				MaxStates: int(cmd.Int("max-states")),
				Timeout:   cmd.Duration("timeout"),
				Logger:    logger,
			})
			logger.Info("Serving MCP over stdio.")

			return srv.ServeStdio()
		},
	}
}

// loadPuzzles returns the --board puzzle or the puzzles of every file
// argument; "-" reads from the command's reader.
func loadPuzzles(cmd *cli.Command) ([]*puzzle.Puzzle, error) {
	if b := cmd.String("board"); b != "" {
		if cmd.NArg() > 0 {
			return nil, usageError("--board cannot be combined with file arguments")
		}
		p, err := puzzle.ParseBoard(b, puzzle.WithName("board"))
		if err != nil {
			return nil, err
		}
		return []*puzzle.Puzzle{p}, nil
	}
	if cmd.NArg() == 0 {
		return nil, usageError("%s: give --board or at least one puzzle file", cmd.Name)
	}

	var all []*puzzle.Puzzle
	for _, path := range cmd.Args().Slice() {
		ps, err := readPuzzleFile(cmd.Root().Reader, path)
		if err != nil {
			return nil, err
		}
		all = append(all, ps...)
	}

	return all, nil
}

func readPuzzleFile(stdin io.Reader, path string) ([]*puzzle.Puzzle, error) {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		ps, err := puzzle.ReadPuzzles(stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return ps, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ps, err := puzzle.ReadPuzzles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ps, nil
}

// overlayFlags applies every solver flag the user set to cfg.
func overlayFlags(cmd *cli.Command, cfg batch.Config) batch.Config {
	if cmd.IsSet("heuristic") {
		cfg.Heuristic = cmd.String("heuristic")
	}
	if cmd.IsSet("max-nodes") {
		cfg.MaxNodes = int(cmd.Int("max-nodes"))
	}
	if cmd.IsSet("timeout") {
		cfg.Timeout = cmd.Duration("timeout")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = int(cmd.Int("workers"))
	}

	return cfg
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	format, err := report.ParseFormat(cmd.String("format"))
	if err != nil {
		return usageError("%v", err)
	}
	puzzles, err := loadPuzzles(cmd)
	if err != nil {
		return err
	}

	jobs := make([]batch.Job, len(puzzles))
	for i, p := range puzzles {
		jobs[i] = batch.Job{Name: p.Name(), Puzzle: p}
	}
	cfg := overlayFlags(cmd, batch.DefaultConfig())

	outcomes, err := solveAndReport(ctx, cmd, jobs, cfg, format)
	if err != nil {
		return err
	}

	if cmd.Bool("verify") {
		if err := verify(outcomes, puzzles); err != nil {
			return err
		}
		ctxlog.FromContext(ctx).Info("All solutions verified.", "puzzles", len(outcomes))
	}
	if cmd.Bool("show") {
		for i, o := range outcomes {
			if o.Err != nil || !o.Result.Solved() {
				continue
			}
			fmt.Fprintf(cmd.Root().Writer, "\n== %s ==\n", o.Name)
			if err := report.Boards(cmd.Root().Writer, puzzles[i], o.Result.Path); err != nil {
				return err
			}
		}
	}

	return failures(outcomes)
}

func runBatch(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return usageError("batch: want exactly one manifest, got %d arguments", cmd.NArg())
	}
	format, err := report.ParseFormat(cmd.String("format"))
	if err != nil {
		return usageError("%v", err)
	}
	m, err := manifest.Load(cmd.Args().First())
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Manifest loaded.", "path", m.Path, "puzzles", len(m.Puzzles))

	cfg := overlayFlags(cmd, m.BatchConfig(batch.DefaultConfig()))
	outcomes, err := solveAndReport(ctx, cmd, m.Jobs(), cfg, format)
	if err != nil {
		return err
	}

	return failures(outcomes)
}

func solveAndReport(ctx context.Context, cmd *cli.Command, jobs []batch.Job, cfg batch.Config, format report.Format) ([]batch.Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, usageError("%v", err)
	}
	outcomes, err := batch.Run(ctx, jobs, cfg)
	if err != nil {
		return nil, err
	}
	if err := report.Write(cmd.Root().Writer, format, report.FromOutcomes(outcomes)); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// verify replays each solution from its puzzle's initial state. Outcomes
// line up with puzzles by index.
func verify(outcomes []batch.Outcome, puzzles []*puzzle.Puzzle) error {
	for i, o := range outcomes {
		if o.Err != nil || !o.Result.Solved() {
			continue
		}
		final, err := puzzle.Replay(puzzles[i], o.Result.Path)
		if err != nil {
			return fmt.Errorf("verify %s: %w", o.Name, err)
		}
		if !final.IsGoal() {
			return fmt.Errorf("verify %s: solution ends outside the goal", o.Name)
		}
	}

	return nil
}

// failures turns outcomes that carry an error into one command error.
func failures(outcomes []batch.Outcome) error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Name, o.Err))
		}
	}

	return errors.Join(errs...)
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	puzzles, err := loadPuzzles(cmd)
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx)

	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PUZZLE\tSTATES\tGOALS\tOPTIMAL\tDEEPEST\tTRUNCATED")
	for _, p := range puzzles {
		res, err := explore.Explore(p,
			explore.WithContext(ctx),
			explore.WithMaxDepth(int(cmd.Int("max-depth"))),
			explore.WithMaxStates(int(cmd.Int("max-states"))),
		)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
		logger.Debug("Explored puzzle.", "puzzle", p.Name(), "states", res.Reachable)

		optimal := "-"
		if res.GoalDepth >= 0 {
			optimal = fmt.Sprint(res.GoalDepth)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\t%t\n", p.Name(), res.Reachable, res.Goals, optimal, res.Deepest, res.Truncated)
	}

	return tw.Flush()
}
