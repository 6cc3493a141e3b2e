//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
)

// ComponentBuilder helps create test components with a fluent interface.
type ComponentBuilder struct {
	*testkit.BaseBuilder
	name string
	ref  string
	repo string
}

// NewComponentBuilder creates a new component builder with sensible defaults.
func NewComponentBuilder() *ComponentBuilder {
	return &ComponentBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "qemu",
		ref:         "8.0.0",
		repo:        "https://github.com/qemu/qemu",
	}
}

// WithName sets the component name.
func (b *ComponentBuilder) WithName(name string) *ComponentBuilder {
	b.name = name
	return b
}

// WithRef sets the pinned ref.
func (b *ComponentBuilder) WithRef(ref string) *ComponentBuilder {
	b.ref = ref
	return b
}

// WithRepo sets the repository URL.
func (b *ComponentBuilder) WithRepo(repo string) *ComponentBuilder {
	b.repo = repo
	return b
}

// Build creates the component (satisfies testkit.Builder interface).
func (b *ComponentBuilder) Build() interface{} {
	return b.BuildComponent()
}

// BuildComponent creates the component with a concrete return type.
func (b *ComponentBuilder) BuildComponent() entities.Component {
	return entities.Component{Name: b.name, Ref: b.ref, Repo: b.repo}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ComponentBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "qemu"
	b.ref = "8.0.0"
	b.repo = "https://github.com/qemu/qemu"
	return b
}

// Clone creates a deep copy of the ComponentBuilder.
func (b *ComponentBuilder) Clone() testkit.Builder {
	return &ComponentBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		ref:         b.ref,
		repo:        b.repo,
	}
}
