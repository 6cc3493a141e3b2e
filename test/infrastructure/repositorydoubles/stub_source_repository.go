//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/domain/repositories"
)

// StubSourceRepository implements repositories.SourceRepository with canned answers.
type StubSourceRepository struct {
	// --- identity ---
	SourceName string

	// --- LatestVersion ---
	Versions map[string]string // component name -> candidate
	Err      error            // returned for every component
	Errors   map[string]error // component name -> error, checked before Err
	// spy: components that were requested
	Requested []entities.Component
	Policies  []entities.BumpPolicy
}

var _ repositories.SourceRepository = (*StubSourceRepository)(nil)

func (s *StubSourceRepository) Name() string { return s.SourceName }

func (s *StubSourceRepository) LatestVersion(
	_ context.Context,
	component entities.Component,
	policy entities.BumpPolicy,
) (string, bool, error) {
	s.Requested = append(s.Requested, component)
	s.Policies = append(s.Policies, policy)
	if err, ok := s.Errors[component.Name]; ok {
		return "", false, err
	}
	if s.Err != nil {
		return "", false, s.Err
	}
	version, ok := s.Versions[component.Name]
	return version, ok && version != "", nil
}
