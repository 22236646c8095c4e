// Package catalog loads the static lookup tables consulted by the onboarding
// rules: departments, job types, relationships, skills and managers.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"employee-onboarding-backend/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default returns the catalog shipped with the binary.
func Default() (*domain.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Default()
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML.
func Parse(data []byte) (*domain.Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("catalog: payload is empty")
	}
	var c domain.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if len(c.Departments) == 0 {
		return nil, fmt.Errorf("catalog: no departments defined")
	}
	if c.Skills == nil {
		c.Skills = map[domain.Department][]string{}
	}
	return &c, nil
}
