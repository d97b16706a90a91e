// Package specfile loads conversion specs from YAML or TOML files.
//
// A spec file bundles the relationship descriptor, attribute rules and
// rendering preferences of one conversion, so a dataset can be re-rendered
// without repeating long command lines:
//
//	descriptor: "payer+bank -> payee"
//	node_rules:
//	  - "payer+bank: shape=box, color=lightblue"
//	edge_rules:
//	  - "amount: fontsize=10"
//	labels: true
//	name: payments
//	rankdir: LR
package specfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tabviz/tabviz/pkg/errors"
)

// Spec is the declarative description of one conversion.
type Spec struct {
	// Descriptor is the relationship descriptor string (required).
	Descriptor string `yaml:"descriptor" toml:"descriptor"`

	// NodeRules and EdgeRules hold attribute-rule strings.
	NodeRules []string `yaml:"node_rules" toml:"node_rules"`
	EdgeRules []string `yaml:"edge_rules" toml:"edge_rules"`

	// Labels enables the node label column.
	Labels bool `yaml:"labels" toml:"labels"`

	// Name is the graph name in the DOT output (defaults to "G").
	Name string `yaml:"name" toml:"name"`

	// Rankdir sets the DOT layout direction when non-empty.
	Rankdir string `yaml:"rankdir" toml:"rankdir"`
}

// Load reads a spec file, choosing the codec by extension:
// .yaml/.yml or .toml. Other extensions are rejected.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "spec file %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidSpecFile,
			"unsupported spec file extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// ParseYAML decodes a YAML spec document.
func ParseYAML(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpecFile, err, "decode yaml spec")
	}
	return &s, s.validate()
}

// ParseTOML decodes a TOML spec document.
func ParseTOML(data []byte) (*Spec, error) {
	var s Spec
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpecFile, err, "decode toml spec")
	}
	return &s, s.validate()
}

func (s *Spec) validate() error {
	if strings.TrimSpace(s.Descriptor) == "" {
		return errors.New(errors.ErrCodeInvalidSpecFile, "spec has no descriptor")
	}
	return nil
}
