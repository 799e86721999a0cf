package spec

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseGrammarSpec reads a metadata document in JSON form.
func ParseGrammarSpec(src io.Reader) (*GrammarSpec, error) {
	d, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	g := &GrammarSpec{}
	if err := json.Unmarshal(d, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseGrammarSpecYAML reads a metadata document in YAML form.
func ParseGrammarSpecYAML(src io.Reader) (*GrammarSpec, error) {
	d, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	g := &GrammarSpec{}
	if err := yaml.Unmarshal(d, g); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadGrammarSpec reads a metadata file, choosing the format by extension.
func LoadGrammarSpec(path string) (*GrammarSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the grammar metadata file %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseGrammarSpecYAML(f)
	default:
		return ParseGrammarSpec(f)
	}
}
