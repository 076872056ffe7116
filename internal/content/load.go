package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTable []byte

// Default returns the built-in donger table.
func Default(opts ...Option) (*Table, error) {
	t, err := Parse(defaultTable, opts...)
	if err != nil {
		return nil, fmt.Errorf("built-in content table: %w", err)
	}
	return t, nil
}

// Open loads the table at path, or the built-in table when path is empty.
func Open(path string, opts ...Option) (*Table, error) {
	if path == "" {
		return Default(opts...)
	}
	return Load(path, opts...)
}

// Load reads a YAML content table from path.
func Load(path string, opts ...Option) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content table: %w", err)
	}

	t, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("content table %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML mapping of category name to a list of strings.
// Categories keep their order of appearance in the document.
func Parse(data []byte, opts ...Option) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmptyTable
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of category to list of strings", root.Line)
	}

	categories := make([]Category, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var entries []string
		if err := value.Decode(&entries); err != nil {
			return nil, fmt.Errorf("category %q (line %d): %w", key.Value, key.Line, err)
		}
		categories = append(categories, Category{Name: key.Value, Entries: entries})
	}

	return New(categories, opts...)
}
