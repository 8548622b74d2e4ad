// Package enum renders a schema enum definition into generated source text,
// the way estuary-flow's driver/sqlgen.go renders a Table into SQL
// statements: pure functions over a declarative input, no shared state.
package enum

// AccessModifier selects the access keyword emitted on the enum
// declaration.
type AccessModifier int

const (
	AccessPublic AccessModifier = iota
	AccessInternal
)

// EnumCaseStrategy controls how a schema value's original name is converted
// into the emitted case identifier.
type EnumCaseStrategy int

const (
	// CaseStrategyCamelCase converts to lowerCamelCase per the documented
	// boundary rules.
	CaseStrategyCamelCase EnumCaseStrategy = iota
	// CaseStrategyNone emits the original value name verbatim.
	CaseStrategyNone
)

// Inclusion is a binary include/exclude toggle, used for several
// independent config switches.
type Inclusion int

const (
	Include Inclusion = iota
	Exclude
)

// Config bundles the rendering options consumed by Render.
type Config struct {
	AccessModifier            AccessModifier
	EnumCases                 EnumCaseStrategy
	DeprecatedEnumCases       Inclusion
	WarningsOnDeprecatedUsage Inclusion
	SchemaDocumentation       Inclusion
}

// Value describes one member of the enum.
type Value struct {
	ValueName        string
	DeprecationReason string
	Documentation    string
	CustomName       string
}

// Input is the full set of renderer inputs for one enum.
type Input struct {
	Name          string
	CustomName    string
	Documentation string
	Values        []Value
}
