package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML shape of a catalog override.
type File struct {
	Projects []Project `yaml:"projects"`
	Banners  []string  `yaml:"banners"`
}

// Load reads a catalog override; sections left empty in the file keep the
// built-in defaults.
func Load(r io.Reader) (*Catalog, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}

	projects := f.Projects
	if len(projects) == 0 {
		projects = defaultProjects
	}
	for _, p := range projects {
		if p.Code == "" {
			return nil, fmt.Errorf("catalog project %q has an empty code", p.Label)
		}
	}

	banners := f.Banners
	if len(banners) == 0 {
		banners = defaultBanners
	}

	return New(projects, banners), nil
}

// LoadFile loads a catalog override from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
