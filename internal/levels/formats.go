package levels

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlLevel is the on-disk YAML structure of a level file.
type yamlLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Map      string            `yaml:"map"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML level file. The map is a block scalar of rows.
func ParseYAML(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("yaml level: missing id")
	}
	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	return Level{
		ID:       yl.ID,
		Name:     name,
		Rows:     strings.Split(yl.Map, "\n"),
		Metadata: yl.Metadata,
	}, nil
}

// ParseText parses a plain ASCII map. The ID is the file name without extension.
func ParseText(data []byte, path string) (Level, error) {
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if id == "" {
		return Level{}, fmt.Errorf("text level: cannot derive id from %q", path)
	}
	return Level{
		ID:   id,
		Name: id,
		Rows: strings.Split(string(data), "\n"),
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}

func parseByExtension(data []byte, path string) (Level, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".txt":
		return ParseText(data, path)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", filepath.Ext(path))
	}
}
