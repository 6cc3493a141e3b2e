package commands

import (
	"fmt"
	"io"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
)

// Compare is the interface for the compare command.
type Compare interface {
	Execute(opts CompareOptions) CompareResult
}

// CompareOptions holds the two refs to order and the policy to evaluate.
type CompareOptions struct {
	Current   string
	Candidate string
	Policy    entities.BumpPolicy
	Out       io.Writer
}

// CompareResult explains how a candidate relates to the current ref.
type CompareResult struct {
	Order   int // -1, 0 or 1 as returned by entities.CompareVersions(Candidate, Current)
	Allowed bool
	Kind    entities.BumpKind
}

// CompareCommand explains how two refs are ordered and gated, useful when
// tuning a pin whose upstream uses an unusual tagging scheme.
type CompareCommand struct{}

// NewCompareCommand creates a new CompareCommand.
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{}
}

// Execute orders the candidate against the current ref and prints a one-line verdict.
func (it *CompareCommand) Execute(opts CompareOptions) CompareResult {
	result := CompareResult{
		Order:   entities.CompareVersions(opts.Candidate, opts.Current),
		Allowed: opts.Policy.Allows(opts.Current, opts.Candidate),
		Kind:    entities.ClassifyBump(opts.Current, opts.Candidate),
	}

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "%s %s %s\n", opts.Candidate, orderSymbol(result.Order), opts.Current)
		if result.Order > 0 {
			fmt.Fprintf(opts.Out, "bump: %s, allowed by policy: %t\n", result.Kind, result.Allowed)
		}
	}
	return result
}

func orderSymbol(order int) string {
	switch {
	case order < 0:
		return "<"
	case order > 0:
		return ">"
	default:
		return "="
	}
}
