package yamlconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/domain/repositories"
)

const (
	refKey  = "ref"
	repoKey = "repo"
	strTag  = "!!str"
	indent  = 2
)

// YAMLConfigurationRepository reads and writes the versions file. The parsed node
// tree is kept per path so that saving only rewrites "ref" values and leaves key
// order, comments and unrelated fields alone.
type YAMLConfigurationRepository struct {
	documents map[string]*yaml.Node
}

// NewYAMLConfigurationRepository creates an empty repository.
func NewYAMLConfigurationRepository() *YAMLConfigurationRepository {
	return &YAMLConfigurationRepository{documents: make(map[string]*yaml.Node)}
}

var _ repositories.ConfigurationRepository = (*YAMLConfigurationRepository)(nil)

// Load parses the file at path into a Configuration.
func (it *YAMLConfigurationRepository) Load(path string) (*entities.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	root, err := mappingRoot(&doc)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}

	cfg := entities.NewConfiguration()
	for i := 0; i+1 < len(root.Content); i += 2 {
		entry := root.Content[i+1]
		cfg.Add(entities.Component{
			Name: root.Content[i].Value,
			Ref:  scalarValue(entry, refKey),
			Repo: scalarValue(entry, repoKey),
		})
	}

	it.documents[documentKey(path)] = &doc
	return cfg, nil
}

// Save writes cfg to path. The document is fully encoded in memory and then
// swapped in through a temporary file, so a failed write never truncates the original.
func (it *YAMLConfigurationRepository) Save(path string, cfg *entities.Configuration) error {
	doc, ok := it.documents[documentKey(path)]
	if !ok {
		doc = &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}

	root, err := mappingRoot(doc)
	if err != nil {
		return err
	}
	for _, component := range cfg.Components() {
		applyComponent(root, component)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)
	if err = encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err = encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err = writeFileAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	it.documents[documentKey(path)] = doc
	return nil
}

func mappingRoot(doc *yaml.Node) (*yaml.Node, error) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("document is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("top level must be a mapping of component names")
	}
	return root, nil
}

// lookup returns the value node stored under key in a mapping node.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// scalarValue returns the literal text of a scalar field, whatever its YAML type.
func scalarValue(mapping *yaml.Node, key string) string {
	node := lookup(mapping, key)
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

func applyComponent(root *yaml.Node, component entities.Component) {
	entry := lookup(root, component.Name)
	if entry == nil {
		entry = &yaml.Node{Kind: yaml.MappingNode}
		root.Content = append(root.Content, stringNode(component.Name), entry)
		if component.Repo != "" {
			entry.Content = append(entry.Content, stringNode(repoKey), stringNode(component.Repo))
		}
	}
	if entry.Kind != yaml.MappingNode {
		return
	}

	ref := lookup(entry, refKey)
	switch {
	case ref == nil:
		entry.Content = append(entry.Content, stringNode(refKey), stringNode(component.Ref))
	case ref.Kind == yaml.ScalarNode && ref.Value != component.Ref:
		ref.Value = component.Ref
		ref.Tag = strTag
	}
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: value}
}

func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %q: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set permissions on %q: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %q: %w", path, err)
	}
	return nil
}

func documentKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
