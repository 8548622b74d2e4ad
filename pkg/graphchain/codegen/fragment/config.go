// Package fragment renders a fragment/selection-set IR into the generated
// struct declaration described in spec.md 4.7, reusing store.Selection as
// its selection-tree type since that is exactly the shape a selection set
// executes against at runtime.
package fragment

import "github.com/graphchain/graphchain-go/pkg/graphchain/store"

// AccessModifier selects the access keyword emitted on the struct
// declaration and its static members.
type AccessModifier int

const (
	AccessPublic AccessModifier = iota
	AccessInternal
	// AccessEmbeddedPublic is embeddedInTarget(.public): public on static
	// members only, the instance declaration stays unmarked.
	AccessEmbeddedPublic
)

// ParentTypeKind distinguishes how __parentType resolves.
type ParentTypeKind int

const (
	ParentObject ParentTypeKind = iota
	ParentInterface
	ParentUnion
)

func (k ParentTypeKind) namespace() string {
	switch k {
	case ParentInterface:
		return "Interfaces"
	case ParentUnion:
		return "Unions"
	default:
		return "Objects"
	}
}

// InitializerTrigger is one member of the selectionSetInitializers config
// set.
type InitializerTrigger int

const (
	InitializerAll InitializerTrigger = iota
	InitializerNamedFragments
	InitializerFragmentSelf
)

// OperationDocumentFormat controls fragmentDefinition emission.
type OperationDocumentFormat int

const (
	DocumentFormatDefinition OperationDocumentFormat = iota
	DocumentFormatOperationID
)

// FieldMerging mirrors the experimentalFeatures.fieldMerging config value;
// only the all-or-not distinction affects initializer suppression per
// spec.md 4.7.
type FieldMerging int

const (
	FieldMergingAll FieldMerging = iota
	FieldMergingPartial
)

// Config bundles the rendering options consumed by Render.
type Config struct {
	AccessModifier          AccessModifier
	OperationDocumentFormat OperationDocumentFormat
	SelectionSetInitializers []InitializerTrigger
	FieldMerging            FieldMerging
}

func (c Config) hasInitializerTrigger(t InitializerTrigger) bool {
	for _, trig := range c.SelectionSetInitializers {
		if trig == t {
			return true
		}
	}
	return false
}

// Input is the full set of renderer inputs for one fragment.
type Input struct {
	Name                string
	SchemaNamespace     string
	ParentTypeKind      ParentTypeKind
	ParentTypeName      string
	Selections          []store.Selection
	LocalCacheMutation  bool
	ImportModules       []string
}
