package repositories

import (
	"fmt"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	domainRepos "github.com/rios0rios0/pinwatch/internal/domain/repositories"
)

// SourceFactory is a constructor function that creates a SourceRepository for a run.
type SourceFactory func(settings *entities.Settings) domainRepos.SourceRepository

// ComponentBinding ties a configuration key to the source that tracks it.
type ComponentBinding struct {
	Component       string
	Source          string
	UnderscoreTags  bool // upstream tags use "_" separators (e.g. BusyBox "1_36_1")
	RequiresLocator bool // the entry must carry a "repo" URL; missing entries are warned about
}

// SourceRegistry manages the source implementations and the fixed, ordered list
// of components they are responsible for.
type SourceRegistry struct {
	factories map[string]SourceFactory
	bindings  []ComponentBinding
	instances map[string]domainRepos.SourceRepository
	settings  *entities.Settings
}

// NewSourceRegistry creates an empty source registry.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		factories: make(map[string]SourceFactory),
		instances: make(map[string]domainRepos.SourceRepository),
	}
}

// Register adds a source factory under the given name (e.g. "github").
func (r *SourceRegistry) Register(name string, factory SourceFactory) {
	r.factories[name] = factory
	delete(r.instances, name)
}

// Bind appends a component binding; binding the same component again replaces
// the source but keeps the original position.
func (r *SourceRegistry) Bind(binding ComponentBinding) {
	for i, existing := range r.bindings {
		if existing.Component == binding.Component {
			r.bindings[i] = binding
			return
		}
	}
	r.bindings = append(r.bindings, binding)
}

// Bindings returns the component bindings in processing order.
func (r *SourceRegistry) Bindings() []ComponentBinding {
	result := make([]ComponentBinding, len(r.bindings))
	copy(result, r.bindings)
	return result
}

// Get returns the source registered under name, built once per settings value.
func (r *SourceRegistry) Get(name string, settings *entities.Settings) (domainRepos.SourceRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %q", name)
	}
	if r.settings != settings {
		r.instances = make(map[string]domainRepos.SourceRepository)
		r.settings = settings
	}
	if source, cached := r.instances[name]; cached {
		return source, nil
	}
	source := factory(settings)
	r.instances[name] = source
	return source, nil
}

// Names returns the list of registered source names.
func (r *SourceRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
