// Package config decodes the generate command's configuration document
// (spec.md 6's Config JSON schema), accepting either JSON or YAML. The
// Config type is a plain decode target for encoding/json, generalized here
// to gopkg.in/yaml.v3 for config files that are authored by hand.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/enum"
	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/fragment"
)

// ModuleType selects how generated output is packaged.
type ModuleType string

const (
	ModuleSwiftPackage     ModuleType = "swiftPackage"
	ModuleOther            ModuleType = "other"
	ModuleEmbeddedInTarget ModuleType = "embeddedInTarget"
)

// Input describes where the schema document lives.
type Input struct {
	SchemaPath string `json:"schemaPath" yaml:"schemaPath"`
}

// SchemaTypesOutput describes the generated-types output location and
// packaging.
type SchemaTypesOutput struct {
	Path               string     `json:"path" yaml:"path"`
	ModuleType         ModuleType `json:"moduleType" yaml:"moduleType"`
	EmbeddedTargetName string     `json:"embeddedTargetName,omitempty" yaml:"embeddedTargetName,omitempty"`
	AccessModifier     string     `json:"accessModifier,omitempty" yaml:"accessModifier,omitempty"`
}

// Output wraps the schemaTypes output block.
type Output struct {
	SchemaTypes SchemaTypesOutput `json:"schemaTypes" yaml:"schemaTypes"`
}

// Options bundles the enum/fragment renderer switches (spec.md 4.6/4.7).
type Options struct {
	DeprecatedEnumCases       string `json:"deprecatedEnumCases,omitempty" yaml:"deprecatedEnumCases,omitempty"`
	WarningsOnDeprecatedUsage string `json:"warningsOnDeprecatedUsage,omitempty" yaml:"warningsOnDeprecatedUsage,omitempty"`
	SchemaDocumentation       string `json:"schemaDocumentation,omitempty" yaml:"schemaDocumentation,omitempty"`
	ConversionStrategies      struct {
		EnumCases string `json:"enumCases,omitempty" yaml:"enumCases,omitempty"`
	} `json:"conversionStrategies,omitempty" yaml:"conversionStrategies,omitempty"`
	SelectionSetInitializers []string `json:"selectionSetInitializers,omitempty" yaml:"selectionSetInitializers,omitempty"`
	OperationDocumentFormat  string   `json:"operationDocumentFormat,omitempty" yaml:"operationDocumentFormat,omitempty"`
}

// ExperimentalFeatures bundles opt-in generator behaviors.
type ExperimentalFeatures struct {
	FieldMerging []string `json:"fieldMerging,omitempty" yaml:"fieldMerging,omitempty"`
}

// SchemaDownload configures the --fetch-schema preflight step.
type SchemaDownload struct {
	Endpoint         string            `json:"endpoint" yaml:"endpoint"`
	Headers          map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	DownloadTimeout  float64           `json:"downloadTimeout,omitempty" yaml:"downloadTimeout,omitempty"`
	OutputPath       string            `json:"outputPath" yaml:"outputPath"`
}

// Config is the full generate-command configuration document.
type Config struct {
	SchemaNamespace      string                `json:"schemaNamespace" yaml:"schemaNamespace"`
	Input                Input                 `json:"input" yaml:"input"`
	Output               Output                `json:"output" yaml:"output"`
	Options              Options               `json:"options" yaml:"options"`
	ExperimentalFeatures ExperimentalFeatures  `json:"experimentalFeatures" yaml:"experimentalFeatures"`
	SchemaDownload       *SchemaDownload       `json:"schemaDownload,omitempty" yaml:"schemaDownload,omitempty"`
}

// ParseJSON decodes a Config from JSON bytes.
func ParseJSON(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode config json: %w", err)
	}
	return &c, nil
}

// ParseYAML decodes a Config from YAML bytes.
func ParseYAML(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode config yaml: %w", err)
	}
	return &c, nil
}

// Load reads path and decodes it as JSON or YAML based on its extension
// (.yaml/.yml use YAML; everything else, including .json, uses JSON).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if isYAMLPath(path) {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

func isYAMLPath(path string) bool {
	for _, ext := range []string{".yaml", ".yml"} {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// EnumConfig translates the decoded Options into enum.Config.
func (c *Config) EnumConfig() enum.Config {
	cfg := enum.Config{}
	if c.Options.DeprecatedEnumCases == "exclude" {
		cfg.DeprecatedEnumCases = enum.Exclude
	}
	if c.Options.WarningsOnDeprecatedUsage == "exclude" {
		cfg.WarningsOnDeprecatedUsage = enum.Exclude
	}
	if c.Options.SchemaDocumentation == "exclude" {
		cfg.SchemaDocumentation = enum.Exclude
	}
	if c.Options.ConversionStrategies.EnumCases == "none" {
		cfg.EnumCases = enum.CaseStrategyNone
	} else {
		cfg.EnumCases = enum.CaseStrategyCamelCase
	}
	cfg.AccessModifier = c.accessModifier()
	return cfg
}

// FragmentConfig translates the decoded Options into fragment.Config.
func (c *Config) FragmentConfig() fragment.Config {
	cfg := fragment.Config{}
	if c.Options.OperationDocumentFormat == "operationId" {
		cfg.OperationDocumentFormat = fragment.DocumentFormatOperationID
	}
	for _, trig := range c.Options.SelectionSetInitializers {
		switch trig {
		case "all":
			cfg.SelectionSetInitializers = append(cfg.SelectionSetInitializers, fragment.InitializerAll)
		case "namedFragments":
			cfg.SelectionSetInitializers = append(cfg.SelectionSetInitializers, fragment.InitializerNamedFragments)
		case "fragment":
			cfg.SelectionSetInitializers = append(cfg.SelectionSetInitializers, fragment.InitializerFragmentSelf)
		}
	}
	cfg.FieldMerging = fragment.FieldMergingPartial
	if len(c.ExperimentalFeatures.FieldMerging) == 1 && c.ExperimentalFeatures.FieldMerging[0] == "all" {
		cfg.FieldMerging = fragment.FieldMergingAll
	}
	switch c.accessModifier() {
	case enum.AccessPublic:
		cfg.AccessModifier = fragment.AccessPublic
	default:
		cfg.AccessModifier = fragment.AccessInternal
	}
	if c.Output.SchemaTypes.ModuleType == ModuleEmbeddedInTarget && c.Output.SchemaTypes.AccessModifier == "public" {
		cfg.AccessModifier = fragment.AccessEmbeddedPublic
	}
	return cfg
}

func (c *Config) accessModifier() enum.AccessModifier {
	switch c.Output.SchemaTypes.ModuleType {
	case ModuleSwiftPackage, ModuleOther:
		return enum.AccessPublic
	default:
		if c.Output.SchemaTypes.AccessModifier == "public" {
			return enum.AccessPublic
		}
		return enum.AccessInternal
	}
}
