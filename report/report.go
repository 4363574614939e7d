// Package report renders solve results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/rushhour/astar"
	"github.com/katalvlaran/rushhour/batch"
	"github.com/katalvlaran/rushhour/puzzle"
)

// ErrFormat is returned for an unknown output format.
var ErrFormat = errors.New("report: unknown format")

// Format selects the rendering.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format { return []Format{Text, JSON, YAML} }

// ParseFormat maps a case-insensitive name to its Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Text, JSON, YAML:
		return f, nil
	}
	if strings.EqualFold(s, "yml") {
		return YAML, nil
	}

	return "", fmt.Errorf("%w: %q (want text, json or yaml)", ErrFormat, s)
}

// Record is the printable result of one puzzle.
type Record struct {
	Name    string        `json:"name" yaml:"name"`
	Status  string        `json:"status" yaml:"status"`
	Cost    int           `json:"cost" yaml:"cost"`
	Nodes   int           `json:"nodes" yaml:"nodes"`
	Settled int           `json:"settled" yaml:"settled"`
	Moves   []string      `json:"moves,omitempty" yaml:"moves,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// FromResult builds the record of a finished search.
func FromResult(name string, res *astar.Result) Record {
	r := Record{
		Name:    name,
		Status:  res.Status.String(),
		Cost:    res.Cost,
		Nodes:   res.NodesExpanded,
		Settled: res.Settled,
		Elapsed: res.Elapsed,
	}
	for _, m := range res.Path {
		r.Moves = append(r.Moves, m.String())
	}

	return r
}

// FromOutcome builds the record of a batch outcome.
func FromOutcome(o batch.Outcome) Record {
	var r Record
	if o.Result != nil {
		r = FromResult(o.Name, o.Result)
	} else {
		r = Record{Name: o.Name, Status: "error", Cost: -1}
	}
	if o.Err != nil {
		r.Status = "error"
		r.Error = o.Err.Error()
	}

	return r
}

// FromOutcomes converts a whole batch.
func FromOutcomes(outcomes []batch.Outcome) []Record {
	records := make([]Record, len(outcomes))
	for i, o := range outcomes {
		records[i] = FromOutcome(o)
	}

	return records
}

// Totals sums a set of records.
type Totals struct {
	Puzzles int `json:"puzzles" yaml:"puzzles"`
	Solved  int `json:"solved" yaml:"solved"`
	Failed  int `json:"failed" yaml:"failed"`
	Moves   int `json:"moves" yaml:"moves"`
	Nodes   int `json:"nodes" yaml:"nodes"`
}

// Sum computes the totals of records.
func Sum(records []Record) Totals {
	t := Totals{Puzzles: len(records)}
	for _, r := range records {
		t.Nodes += r.Nodes
		switch {
		case r.Error != "":
			t.Failed++
		case r.Status == astar.StatusSolved.String():
			t.Solved++
			t.Moves += r.Cost
		}
	}

	return t
}

// document is the JSON and YAML layout.
type document struct {
	Puzzles []Record `json:"puzzles" yaml:"puzzles"`
	Summary Totals   `json:"summary" yaml:"summary"`
}

// Write renders records to w in format f.
func Write(w io.Writer, f Format, records []Record) error {
	doc := document{Puzzles: records, Summary: Sum(records)}
	if doc.Puzzles == nil {
		doc.Puzzles = []Record{}
	}

	switch f {
	case Text:
		return writeText(w, doc)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrFormat, string(f))
	}
}

func writeText(w io.Writer, doc document) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PUZZLE\tSTATUS\tMOVES\tNODES\tSETTLED\tELAPSED")
	for _, r := range doc.Puzzles {
		cost := "-"
		if r.Status == astar.StatusSolved.String() {
			cost = fmt.Sprint(r.Cost)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", r.Name, r.Status, cost, r.Nodes, r.Settled, r.Elapsed.Round(time.Microsecond))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, r := range doc.Puzzles {
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s: %s\n", r.Name, r.Error)
		case len(r.Moves) > 0:
			fmt.Fprintf(w, "%s: %s\n", r.Name, strings.Join(r.Moves, " "))
		}
	}

	s := doc.Summary
	_, err := fmt.Fprintf(w, "%d puzzles, %d solved, %d failed, %d moves, %d nodes\n",
		s.Puzzles, s.Solved, s.Failed, s.Moves, s.Nodes)

	return err
}

// Boards writes the board before the first move and after every move of a
// solution, separated by blank lines and labelled with the move.
func Boards(w io.Writer, p *puzzle.Puzzle, moves []puzzle.Move) error {
	s := p.Initial()
	if _, err := fmt.Fprintf(w, "start\n%v\n", s); err != nil {
		return err
	}
	for i, m := range moves {
		next, err := s.Apply(m)
		if err != nil {
			return fmt.Errorf("move %d (%v): %w", i, m, err)
		}
		s = next
		if _, err := fmt.Fprintf(w, "\n%d. %v\n%v\n", i+1, m, s); err != nil {
			return err
		}
	}

	return nil
}
