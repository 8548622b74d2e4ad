package enum

import (
	"strings"
	"testing"
)

func TestRenderBasicEnum(t *testing.T) {
	input := Input{
		Name: "episode",
		Values: []Value{
			{ValueName: "NEWHOPE"},
			{ValueName: "EMPIRE"},
			{ValueName: "JEDI"},
		},
	}
	out := Render(input, Config{AccessModifier: AccessPublic, EnumCases: CaseStrategyCamelCase})

	if !strings.Contains(out, "public enum Episode: String, EnumType {") {
		t.Errorf("missing declaration line, got:\n%s", out)
	}
	if !strings.Contains(out, `case newhope = "NEWHOPE"`) {
		t.Errorf("expected a camelCased case for NEWHOPE, got:\n%s", out)
	}
}

func TestRenderCaseStrategyNonePreservesOriginalSpelling(t *testing.T) {
	input := Input{
		Name:   "episode",
		Values: []Value{{ValueName: "NEWHOPE"}},
	}
	out := Render(input, Config{EnumCases: CaseStrategyNone})

	if !strings.Contains(out, `case NEWHOPE = "NEWHOPE"`) {
		t.Errorf("expected the original spelling to survive CaseStrategyNone, got:\n%s", out)
	}
}

func TestRenderReservedEnumNameGetsSuffix(t *testing.T) {
	input := Input{Name: "type", Values: []Value{{ValueName: "A"}}}
	out := Render(input, Config{})

	if !strings.Contains(out, "enum Type_Enum:") {
		t.Errorf("expected a reserved enum name to be suffixed, got:\n%s", out)
	}
}

func TestRenderReservedValueNameGetsBacktickEscaped(t *testing.T) {
	input := Input{
		Name:   "accessLevel",
		Values: []Value{{ValueName: "default"}},
	}
	out := Render(input, Config{EnumCases: CaseStrategyNone})

	if !strings.Contains(out, "case `default` = \"default\"") {
		t.Errorf("expected a reserved value identifier to be backtick-escaped, got:\n%s", out)
	}
}

func TestRenderDeprecatedCaseExcludedWhenConfigured(t *testing.T) {
	input := Input{
		Name: "episode",
		Values: []Value{
			{ValueName: "NEWHOPE"},
			{ValueName: "OLD", DeprecationReason: "no longer used"},
		},
	}
	out := Render(input, Config{DeprecatedEnumCases: Exclude, EnumCases: CaseStrategyNone})

	if strings.Contains(out, "OLD") {
		t.Errorf("expected the deprecated case to be excluded, got:\n%s", out)
	}
}

func TestRenderDeprecationWarningComment(t *testing.T) {
	input := Input{
		Name: "episode",
		Values: []Value{
			{ValueName: "OLD", DeprecationReason: "no longer used"},
		},
	}
	out := Render(input, Config{DeprecatedEnumCases: Include, WarningsOnDeprecatedUsage: Include, EnumCases: CaseStrategyNone})

	if !strings.Contains(out, "/// **Deprecated**: no longer used") {
		t.Errorf("expected a deprecation warning comment, got:\n%s", out)
	}
}

func TestRenderCustomNameEmitsRenameComment(t *testing.T) {
	input := Input{
		Name: "episode",
		Values: []Value{
			{ValueName: "NEWHOPE", CustomName: "original"},
		},
	}
	out := Render(input, Config{EnumCases: CaseStrategyNone})

	if !strings.Contains(out, "// Renamed from GraphQL schema value: 'NEWHOPE'") {
		t.Errorf("expected a rename comment for the custom value name, got:\n%s", out)
	}
	if !strings.Contains(out, "case original = \"NEWHOPE\"") {
		t.Errorf("expected the custom identifier to be used, got:\n%s", out)
	}
}

func TestRenderSchemaDocumentationIncluded(t *testing.T) {
	input := Input{
		Name:          "episode",
		Documentation: "The episodes of the original trilogy.",
		Values:        []Value{{ValueName: "JEDI"}},
	}
	out := Render(input, Config{SchemaDocumentation: Include, EnumCases: CaseStrategyNone})

	if !strings.Contains(out, "/// The episodes of the original trilogy.") {
		t.Errorf("expected schema documentation to be rendered, got:\n%s", out)
	}
}
