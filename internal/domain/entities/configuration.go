package entities

import "strings"

// Configuration is the in-memory model of the versions file: components keyed by
// name, kept in the order they appear in the document.
type Configuration struct {
	order      []string
	components map[string]*Component
}

// NewConfiguration builds a configuration from components in document order.
// A repeated name replaces the earlier entry but keeps its original position.
func NewConfiguration(components ...Component) *Configuration {
	cfg := &Configuration{components: make(map[string]*Component, len(components))}
	for _, c := range components {
		cfg.Add(c)
	}
	return cfg
}

// Add inserts or replaces a component.
func (it *Configuration) Add(component Component) {
	if it.components == nil {
		it.components = make(map[string]*Component)
	}
	if _, exists := it.components[component.Name]; !exists {
		it.order = append(it.order, component.Name)
	}
	c := component
	it.components[component.Name] = &c
}

// Get returns a copy of the named component.
func (it *Configuration) Get(name string) (Component, bool) {
	c, ok := it.components[name]
	if !ok {
		return Component{}, false
	}
	return *c, true
}

// Has reports whether the configuration tracks the named component.
func (it *Configuration) Has(name string) bool {
	_, ok := it.components[name]
	return ok
}

// CurrentRef returns the trimmed pinned ref of the component, or "" if absent.
func (it *Configuration) CurrentRef(name string) string {
	if c, ok := it.components[name]; ok {
		return strings.TrimSpace(c.Ref)
	}
	return ""
}

// SetRef updates the pinned ref in place. It returns false if the component is unknown.
func (it *Configuration) SetRef(name, ref string) bool {
	c, ok := it.components[name]
	if !ok {
		return false
	}
	c.Ref = ref
	return true
}

// Names returns the component names in document order.
func (it *Configuration) Names() []string {
	names := make([]string, len(it.order))
	copy(names, it.order)
	return names
}

// Components returns copies of all components in document order.
func (it *Configuration) Components() []Component {
	result := make([]Component, 0, len(it.order))
	for _, name := range it.order {
		result = append(result, *it.components[name])
	}
	return result
}
