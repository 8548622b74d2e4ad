package graphchain

import "github.com/graphchain/graphchain-go/pkg/graphchain/store"

// OperationKind distinguishes the three GraphQL operation shapes.
type OperationKind int

const (
	// OperationQuery is a read-only, cacheable operation.
	OperationQuery OperationKind = iota
	// OperationMutation is a write operation; never served from cache.
	OperationMutation
	// OperationSubscription is a long-lived, multipart-capable operation.
	OperationSubscription
)

func (k OperationKind) String() string {
	switch k {
	case OperationQuery:
		return "query"
	case OperationMutation:
		return "mutation"
	case OperationSubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// GraphQLOperation is the capability set every query/mutation/subscription
// type generated by the code generator implements.
type GraphQLOperation interface {
	OperationKind() OperationKind
	OperationName() string
	OperationDocument() string
	Variables() map[string]interface{}
	RootSelectionSet() []store.Selection
}

// SubscriptionOperation is additionally implemented by generated
// subscription types, advertising multipart acceptance.
type SubscriptionOperation interface {
	GraphQLOperation
	AcceptsMultipart() bool
}

// UploadOperation is implemented by mutations carrying file uploads
// alongside their variables (the "upload" operation shape named in
// spec.md 1).
type UploadOperation interface {
	GraphQLOperation
	Files() []UploadFile
}

// UploadFile names one file attached to an upload mutation.
type UploadFile struct {
	FieldName    string
	OriginalName string
	FileURL      string
}

// BasicOperation is a small concrete GraphQLOperation implementation
// usable directly by callers and tests that do not go through the code
// generator (e.g. RawGraphQLQuery-style ad hoc documents, mirroring
// pkg/mythic's RawGraphQLQuery escape hatch).
type BasicOperation struct {
	Kind         OperationKind
	Name         string
	Document     string
	Vars         map[string]interface{}
	Selections   []store.Selection
	Multipart    bool
	UploadFields []UploadFile
}

func (o *BasicOperation) OperationKind() OperationKind            { return o.Kind }
func (o *BasicOperation) OperationName() string                   { return o.Name }
func (o *BasicOperation) OperationDocument() string                { return o.Document }
func (o *BasicOperation) Variables() map[string]interface{}        { return o.Vars }
func (o *BasicOperation) RootSelectionSet() []store.Selection      { return o.Selections }
func (o *BasicOperation) AcceptsMultipart() bool                   { return o.Multipart }
func (o *BasicOperation) Files() []UploadFile                      { return o.UploadFields }
