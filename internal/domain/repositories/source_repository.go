package repositories

import (
	"context"
	"errors"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
)

// ErrUnparseableLocator is returned when a component's repository URL does not
// point at a location the source understands. The component is skipped.
var ErrUnparseableLocator = errors.New("repository locator not recognized")

// SourceRepository abstracts an upstream release channel (GitHub, kernel.org, etc.).
// Implementations map one component onto the newest version string they can find.
type SourceRepository interface {
	// Name returns the source identifier (e.g. "github", "kernelorg").
	Name() string

	// LatestVersion returns the best candidate version for the component.
	// found is false (with a nil error) when the upstream has nothing to offer.
	LatestVersion(
		ctx context.Context,
		component entities.Component,
		policy entities.BumpPolicy,
	) (version string, found bool, err error)
}
