// Package cli builds the rushhour command tree: it parses flags and
// environment variables, configures logging, and turns command-line input
// into puzzle, batch and report calls.
package cli
