package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/katalvlaran/rushhour/heuristic"
)

// ErrInvalidConfig is returned by Config.Validate and Run for unusable settings.
var ErrInvalidConfig = errors.New("batch: invalid config")

// Config holds the settings shared by every solve in a batch.
type Config struct {
	Workers   int           // concurrent solves, ≥ 1
	Heuristic string        // registered heuristic name
	MaxNodes  int           // per-puzzle node budget; 0 means none
	Timeout   time.Duration // per-puzzle wall clock; 0 means none
	Logger    *slog.Logger  // nil: the logger carried by the context
}

// DefaultConfig returns one worker per usable CPU, the default heuristic and
// no budgets.
func DefaultConfig() Config {
	return Config{
		Workers:   runtime.GOMAXPROCS(0),
		Heuristic: heuristic.Default,
	}
}

// Validate reports every problem with c, joined, each wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers))
	}
	if _, err := heuristic.ByName(c.Heuristic); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	if c.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("%w: max nodes cannot be negative, got %d", ErrInvalidConfig, c.MaxNodes))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: timeout cannot be negative, got %s", ErrInvalidConfig, c.Timeout))
	}

	return errors.Join(errs...)
}
