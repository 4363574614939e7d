// Package batch solves many puzzles concurrently. Each solve owns its search
// state; puzzles are shared read-only. Budgets apply per puzzle, and a puzzle
// that runs out of budget or time is an outcome, not a batch failure.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/rushhour/astar"
	"github.com/katalvlaran/rushhour/heuristic"
	"github.com/katalvlaran/rushhour/internal/ctxlog"
	"github.com/katalvlaran/rushhour/puzzle"
)

// Job is one puzzle to solve.
type Job struct {
	Name   string
	Puzzle *puzzle.Puzzle
}

// Outcome is the result of one Job. Result is set whenever the search ran,
// including when it stopped early; Err is set when the job could not be
// solved for a reason other than its own budget.
type Outcome struct {
	Name   string
	Result *astar.Result
	Err    error
}

// Run solves jobs with up to cfg.Workers concurrent searches and returns one
// Outcome per job, in input order.
//
// A job that exceeds cfg.MaxNodes ends with StatusBudgetExceeded and one that
// exceeds cfg.Timeout ends with StatusTimedOut; neither sets Outcome.Err. If
// ctx ends, unfinished jobs are abandoned and Run returns the outcomes so far
// with ctx.Err().
func Run(ctx context.Context, jobs []Job, cfg Config) ([]Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, _ := heuristic.ByName(cfg.Heuristic)
	logger := cfg.Logger
	if logger == nil {
		logger = ctxlog.FromContext(ctx)
	}

	outcomes := make([]Outcome, len(jobs))
	for i, job := range jobs {
		outcomes[i].Name = job.Name
	}

	logger.Info("Starting batch.", "puzzles", len(jobs), "workers", cfg.Workers, "heuristic", cfg.Heuristic)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = solve(gctx, job, h, cfg, logger)
			return ctx.Err()
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	for i := range outcomes {
		if outcomes[i].Result == nil && outcomes[i].Err == nil && err != nil {
			outcomes[i].Err = err
		}
	}
	if err != nil {
		logger.Warn("Batch aborted.", "error", err)
		return outcomes, err
	}

	sum := Summarize(outcomes)
	logger.Info("Batch finished.",
		"solved", sum.Solved,
		"unsolved", sum.Total-sum.Solved,
		"nodes", sum.Nodes,
		"elapsed", time.Since(start),
	)

	return outcomes, nil
}

// solve runs one job under its own timeout.
func solve(ctx context.Context, job Job, h heuristic.Func, cfg Config, logger *slog.Logger) Outcome {
	out := Outcome{Name: job.Name}
	jctx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		jctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res, err := astar.Solve(job.Puzzle,
		astar.WithContext(jctx),
		astar.WithHeuristic(h),
		astar.WithMaxNodes(cfg.MaxNodes),
		astar.WithLogger(logger),
	)
	out.Result = res
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		// the job's own timeout, not the batch's
	default:
		out.Err = err
	}

	if out.Err != nil {
		logger.Error("Puzzle failed.", "puzzle", job.Name, "error", out.Err)
		return out
	}
	logger.Debug("Puzzle done.",
		"puzzle", job.Name,
		"status", res.Status.String(),
		"cost", res.Cost,
		"nodes", res.NodesExpanded,
	)

	return out
}

// Summary aggregates a batch.
type Summary struct {
	Total          int
	Solved         int
	Unsolvable     int
	BudgetExceeded int
	TimedOut       int
	Canceled       int
	Failed         int           // outcomes carrying an error
	Moves          int           // total cost of solved puzzles
	Nodes          int           // total nodes generated
	Elapsed        time.Duration // total search time, summed over puzzles
}

// Summarize counts outcomes by status.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Err != nil {
			s.Failed++
			continue
		}
		if o.Result == nil {
			continue
		}
		s.Nodes += o.Result.NodesExpanded
		s.Elapsed += o.Result.Elapsed
		switch o.Result.Status {
		case astar.StatusSolved:
			s.Solved++
			s.Moves += o.Result.Cost
		case astar.StatusUnsolvable:
			s.Unsolvable++
		case astar.StatusBudgetExceeded:
			s.BudgetExceeded++
		case astar.StatusTimedOut:
			s.TimedOut++
		case astar.StatusCanceled:
			s.Canceled++
		}
	}

	return s
}
