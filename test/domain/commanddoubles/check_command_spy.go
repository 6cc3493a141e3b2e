//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pinwatch/internal/domain/commands"
	"github.com/rios0rios0/pinwatch/internal/domain/entities"
)

// CheckCommandSpy implements commands.Check and records its inputs.
type CheckCommandSpy struct {
	Result *commands.CheckResult
	Err    error

	// spy
	Settings []*entities.Settings
	Options  []commands.CheckOptions
}

var _ commands.Check = (*CheckCommandSpy)(nil)

func (s *CheckCommandSpy) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.CheckOptions,
) (*commands.CheckResult, error) {
	s.Settings = append(s.Settings, settings)
	s.Options = append(s.Options, opts)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Result == nil {
		return &commands.CheckResult{}, nil
	}
	return s.Result, nil
}
