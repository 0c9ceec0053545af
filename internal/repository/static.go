package repository

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"openkey/internal/model"

	"go.yaml.in/yaml/v3"
)

//go:embed data/projects.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Projects []model.Project `yaml:"projects"`
}

// StaticCatalog serves a fixed project list loaded once at startup
type StaticCatalog struct {
	projects []model.Project
	byID     map[string]int
}

// NewStaticCatalog wraps an in-memory project list. Duplicate ids are an error.
func NewStaticCatalog(projects []model.Project) (*StaticCatalog, error) {
	byID := make(map[string]int, len(projects))
	for i, p := range projects {
		if p.ID == "" {
			return nil, fmt.Errorf("project at index %d has no id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate project id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &StaticCatalog{projects: projects, byID: byID}, nil
}

// LoadStaticCatalog reads the catalog at path, or the embedded one when path
// is empty.
func LoadStaticCatalog(path string) (*StaticCatalog, error) {
	data := embeddedCatalog
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}

	projects, err := DecodeCatalog(data)
	if err != nil {
		return nil, err
	}
	return NewStaticCatalog(projects)
}

// DecodeCatalog parses catalog YAML
func DecodeCatalog(data []byte) ([]model.Project, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return f.Projects, nil
}

// SaveYAML writes projects to path in the catalog file format
func SaveYAML(path string, projects []model.Project) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Projects: projects}); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return os.Rename(tmp, path)
}

// ListProjects returns a copy of the catalog in file order
func (c *StaticCatalog) ListProjects(_ context.Context) ([]model.Project, error) {
	out := make([]model.Project, len(c.projects))
	copy(out, c.projects)
	return out, nil
}

// GetProject looks a project up by id
func (c *StaticCatalog) GetProject(_ context.Context, id string) (*model.Project, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := c.projects[i]
	return &p, nil
}

// Len is the number of projects in the catalog
func (c *StaticCatalog) Len() int {
	return len(c.projects)
}
