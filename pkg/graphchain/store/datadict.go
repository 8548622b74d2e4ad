package store

// DataDict is the type-erased nested mapping backing a generated selection
// set's field accessors. Its shape mirrors the SelectionSet that produced
// it: the caller owns the DataDict, and it is immutable except when the
// generating selection set is a local cache mutation, in which case field
// writes flow back through the DataDict into the owning Store on next
// Publish.
type DataDict struct {
	data      map[string]interface{}
	fulfilled map[string]struct{}
}

// NewDataDict wraps data (a denormalized field → value map, References
// already resolved into nested DataDicts/scalars by selection-set
// execution) together with the set of fragment identifiers known to be
// fulfilled by this data.
func NewDataDict(data map[string]interface{}, fulfilledFragments map[string]struct{}) DataDict {
	if data == nil {
		data = make(map[string]interface{})
	}
	if fulfilledFragments == nil {
		fulfilledFragments = make(map[string]struct{})
	}
	return DataDict{data: data, fulfilled: fulfilledFragments}
}

// Get returns the raw value stored at field, and whether it was present.
func (d DataDict) Get(field string) (interface{}, bool) {
	v, ok := d.data[field]
	return v, ok
}

// Set writes field's value. Intended only for local-cache-mutation
// generated accessors, whose setters call this and rely on the caller to
// re-publish the owning selection set's root key afterward.
func (d DataDict) Set(field string, value interface{}) {
	d.data[field] = value
}

// FulfillsFragment reports whether fragment's identifier is known to be
// materialized in this data.
func (d DataDict) FulfillsFragment(fragmentIdentifier string) bool {
	_, ok := d.fulfilled[fragmentIdentifier]
	return ok
}

// Raw exposes the backing map for generated code that needs direct access
// (e.g. to recurse into a nested DataDict for a composite field).
func (d DataDict) Raw() map[string]interface{} {
	return d.data
}
