package enum

import (
	"fmt"
	"strings"
)

// renamedComment is emitted above a declaration whose identifier was
// overridden by a customName, recording the original schema spelling.
func renamedComment(original string) string {
	return fmt.Sprintf("// Renamed from GraphQL schema value: '%s'", original)
}

// Render renders input under config into the generated enum declaration
// text described in spec.md 4.6.
func Render(input Input, config Config) string {
	var b strings.Builder

	name := renderedName(input, &b)

	access := ""
	if config.AccessModifier == AccessPublic {
		access = "public "
	}

	if config.SchemaDocumentation == Include && input.Documentation != "" {
		writeDocLines(&b, input.Documentation)
	}

	fmt.Fprintf(&b, "%senum %s: String, EnumType {\n", access, name)

	for _, v := range input.Values {
		if v.DeprecationReason != "" && config.DeprecatedEnumCases == Exclude {
			continue
		}
		writeValue(&b, v, config)
	}

	b.WriteString("}\n")
	return b.String()
}

// renderedName writes any leading rename comment to b and returns the
// enum's rendered identifier.
func renderedName(input Input, b *strings.Builder) string {
	if input.CustomName != "" {
		b.WriteString(renamedComment(input.Name))
		b.WriteString("\n")
		return input.CustomName
	}
	name := FirstUppercased(input.Name)
	if isReservedKeyword(name) {
		name += "_Enum"
	}
	return name
}

func writeValue(b *strings.Builder, v Value, config Config) {
	if config.SchemaDocumentation == Include && v.Documentation != "" {
		writeDocLines(b, v.Documentation)
		if v.DeprecationReason != "" && config.WarningsOnDeprecatedUsage == Include {
			b.WriteString("///\n")
		}
	}
	if v.DeprecationReason != "" && config.WarningsOnDeprecatedUsage == Include {
		fmt.Fprintf(b, "/// **Deprecated**: %s\n", v.DeprecationReason)
	}

	identifier := v.ValueName
	rename := ""
	if v.CustomName != "" {
		rename = renamedComment(v.ValueName)
		identifier = v.CustomName
	} else if config.EnumCases == CaseStrategyCamelCase {
		identifier = ToLowerCamelCase(v.ValueName)
	}

	if rename == "" && isReservedKeyword(identifier) {
		identifier = "`" + identifier + "`"
	}
	if rename != "" {
		b.WriteString(rename)
		b.WriteString("\n")
	}

	fmt.Fprintf(b, "  case %s = \"%s\"\n", identifier, v.ValueName)
}

func writeDocLines(b *strings.Builder, doc string) {
	for _, line := range strings.Split(doc, "\n") {
		fmt.Fprintf(b, "/// %s\n", line)
	}
}
