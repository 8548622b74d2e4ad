package fragment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/identifiers"
	"github.com/graphchain/graphchain-go/pkg/graphchain/store"
)

// Render renders input under config into the generated struct declaration
// text described in spec.md 4.7.
func Render(input Input, config Config) string {
	var b strings.Builder

	name := renderedName(input.Name)
	namespace := renderedNamespace(input.SchemaNamespace)
	kind := "SelectionSet"
	if input.LocalCacheMutation {
		kind = "MutableSelectionSet"
	}

	access := accessPrefix(config.AccessModifier, false)
	fmt.Fprintf(&b, "%sstruct %s: %s.%s, Fragment {\n", access, name, namespace, kind)

	if config.OperationDocumentFormat != DocumentFormatOperationID {
		staticAccess := accessPrefix(config.AccessModifier, true)
		fmt.Fprintf(&b, "  %sstatic var fragmentDefinition: StaticString { #\"%s\"# }\n", staticAccess, fragmentDefinitionBody(input))
	}

	dataKeyword := "let"
	if input.LocalCacheMutation {
		dataKeyword = "var"
	}
	fmt.Fprintf(&b, "  %s __data: DataDict\n", dataKeyword)
	b.WriteString("  init(_dataDict: DataDict) { __data = _dataDict }\n")

	staticAccess := accessPrefix(config.AccessModifier, true)
	fmt.Fprintf(&b, "  %sstatic var __parentType: any ParentType { %s.%s.%s }\n", staticAccess, namespace, parentTypeNamespace(input.ParentTypeKind), input.ParentTypeName)

	if !omitSelections(input) {
		fmt.Fprintf(&b, "  %sstatic var __selections: [Selection] { [\n", staticAccess)
		for _, sel := range input.Selections {
			b.WriteString(renderSelectionEntry(sel, "    "))
		}
		b.WriteString("  ] }\n")
	}

	for _, sel := range input.Selections {
		if sel.FieldName == "__typename" {
			continue
		}
		b.WriteString(renderAccessor(sel, input.LocalCacheMutation, access))
	}

	if emitsInitializer(input, config) {
		b.WriteString(renderInitializer(input, access))
	}

	b.WriteString("}\n")
	return b.String()
}

func renderedName(name string) string {
	rendered := identifiers.FirstUppercased(name)
	if identifiers.IsReserved(rendered) {
		rendered += "_Fragment"
	}
	return rendered
}

func renderedNamespace(namespace string) string {
	if identifiers.IsEntirelyLowercase(namespace) {
		return identifiers.FirstUppercased(namespace)
	}
	return namespace
}

func parentTypeNamespace(kind ParentTypeKind) string {
	return kind.namespace()
}

func accessPrefix(mod AccessModifier, staticMember bool) string {
	switch mod {
	case AccessPublic:
		return "public "
	case AccessEmbeddedPublic:
		if staticMember {
			return "public "
		}
		return ""
	default:
		return ""
	}
}

// omitSelections implements the rule: the __selections block is dropped
// iff the fragment's only direct selection is __typename AND the parent
// type is an Object.
func omitSelections(input Input) bool {
	if input.ParentTypeKind != ParentObject {
		return false
	}
	if len(input.Selections) != 1 {
		return false
	}
	return input.Selections[0].FieldName == "__typename"
}

func renderSelectionEntry(sel store.Selection, indent string) string {
	if sel.FieldName == "__typename" {
		return fmt.Sprintf("%s.field(\"__typename\", String.self),\n", indent)
	}
	if len(sel.SubSelections) == 0 {
		return fmt.Sprintf("%s.field(%q, %s.self),\n", indent, sel.FieldName, fieldScalarType(sel))
	}
	return fmt.Sprintf("%s.field(%q, %s.self),\n", indent, sel.FieldName, fieldCompositeType(sel))
}

func fieldScalarType(sel store.Selection) string {
	if sel.List {
		return "[String]"
	}
	return "String"
}

func fieldCompositeType(sel store.Selection) string {
	name := identifiers.FirstUppercased(sel.FieldName)
	if sel.List {
		return "[" + name + "]"
	}
	return name
}

func renderAccessor(sel store.Selection, mutable bool, access string) string {
	fieldType := accessorType(sel)
	varName := sel.ResponseKey
	if identifiers.IsReserved(varName) {
		varName = "`" + varName + "`"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  %svar %s: %s {\n", access, varName, fieldType)
	fmt.Fprintf(&b, "    get { __data[%q] }\n", sel.FieldName)
	if mutable {
		fmt.Fprintf(&b, "    set { __data[%q] = newValue }\n", sel.FieldName)
	}
	b.WriteString("  }\n")
	return b.String()
}

func accessorType(sel store.Selection) string {
	if len(sel.SubSelections) > 0 {
		return fieldCompositeType(sel)
	}
	return fieldScalarType(sel)
}

func emitsInitializer(input Input, config Config) bool {
	if input.LocalCacheMutation {
		return true
	}
	if config.hasInitializerTrigger(InitializerAll) {
		return config.FieldMerging == FieldMergingAll
	}
	return config.hasInitializerTrigger(InitializerNamedFragments) || config.hasInitializerTrigger(InitializerFragmentSelf)
}

func renderInitializer(input Input, access string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %sinit(\n", access)
	for i, sel := range input.Selections {
		if sel.FieldName == "__typename" {
			continue
		}
		comma := ","
		if i == len(input.Selections)-1 {
			comma = ""
		}
		fmt.Fprintf(&b, "    %s: %s%s\n", sel.ResponseKey, accessorType(sel), comma)
	}
	b.WriteString("  ) {\n")
	b.WriteString("    self.init(_dataDict: DataDict(data: [\n")
	b.WriteString("      \"__typename\": " + strconv.Quote(input.ParentTypeName) + ",\n")
	for _, sel := range input.Selections {
		if sel.FieldName == "__typename" {
			continue
		}
		fmt.Fprintf(&b, "      %q: %s,\n", sel.FieldName, sel.ResponseKey)
	}
	b.WriteString("    ], fulfilledFragments: []))\n")
	b.WriteString("  }\n")
	return b.String()
}

// fragmentDefinitionBody reprints the fragment's selection tree as GraphQL
// source text, injecting __typename as the first selection of every
// composite selection set, per spec.md 4.7. The local-cache-mutation
// directive, if any, is never part of this tree (it is tracked as the
// input's LocalCacheMutation flag, not a selection), so stripping it is
// implicit.
func fragmentDefinitionBody(input Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "fragment %s on %s {\\n", input.Name, input.ParentTypeName)
	writeSelections(&b, input.Selections, "  ")
	b.WriteString("}")
	return b.String()
}

func writeSelections(b *strings.Builder, selections []store.Selection, indent string) {
	hasTypename := false
	for _, sel := range selections {
		if sel.FieldName == "__typename" {
			hasTypename = true
			break
		}
	}
	if !hasTypename {
		fmt.Fprintf(b, "%s__typename\\n", indent)
	}
	for _, sel := range selections {
		if len(sel.SubSelections) == 0 {
			fmt.Fprintf(b, "%s%s\\n", indent, sel.ResponseKey)
			continue
		}
		fmt.Fprintf(b, "%s%s {\\n", indent, sel.ResponseKey)
		writeSelections(b, sel.SubSelections, indent+"  ")
		fmt.Fprintf(b, "%s}\\n", indent)
	}
}
