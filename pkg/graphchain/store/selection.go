package store

// Selection describes one field of a generated selection set, enough for
// Store.Execute to resolve it against a RecordSet. Generated code builds a
// []Selection for every SelectionSet/Fragment it emits; codegen/fragment
// renders the Swift-shaped text equivalent for the consuming language, while
// this Go-side Selection is what the client-side store execution walks at
// runtime.
type Selection struct {
	// ResponseKey is the key the field's value is stored under in the
	// resulting DataDict (the GraphQL alias, or the field name if
	// unaliased).
	ResponseKey string

	// FieldName and Args determine the Record storage key via
	// FieldCacheKey.
	FieldName string
	Args      map[string]interface{}

	// SubSelections is non-empty for composite (object/list) fields; nil
	// for scalar leaves.
	SubSelections []Selection

	// List marks that the field's Record value is a list whose elements
	// should each be resolved against SubSelections (following References
	// per-element when the list is of object type).
	List bool
}

// CacheMissError reports that a local-cache-only execution could not
// satisfy the selection set because a required field was absent.
type CacheMissError struct {
	Path string
}

func (e *CacheMissError) Error() string {
	return "cache miss at " + e.Path
}

// RecordLoader resolves a CacheKey to its Record, reporting absence the way
// a map lookup would. Store satisfies this directly; tests can supply a
// plain RecordSet.
type RecordLoader interface {
	LoadRecord(key CacheKey) (Record, bool)
}

// Execute walks selections starting at rootKey, resolving each field via
// (fieldName, arguments) against the Record storage key, following
// References recursively, and producing a DataDict plus the set of
// CacheKeys touched along the way (dependentKeys). A missing field fails
// with *CacheMissError naming the dotted field path.
func Execute(loader RecordLoader, rootKey CacheKey, selections []Selection) (DataDict, ChangedKeys, error) {
	dependent := make(ChangedKeys)
	data, err := executeSelections(loader, rootKey, selections, "", dependent)
	if err != nil {
		return DataDict{}, dependent, err
	}
	return NewDataDict(data, nil), dependent, nil
}

func executeSelections(loader RecordLoader, key CacheKey, selections []Selection, pathPrefix string, dependent ChangedKeys) (map[string]interface{}, error) {
	record, ok := loader.LoadRecord(key)
	if !ok {
		return nil, &CacheMissError{Path: pathPrefix}
	}
	dependent[key] = struct{}{}

	out := make(map[string]interface{}, len(selections))
	for _, sel := range selections {
		path := pathPrefix + sel.ResponseKey
		storageKey := FieldCacheKey(sel.FieldName, sel.Args)
		raw, present := record[storageKey]
		if !present {
			return nil, &CacheMissError{Path: path}
		}

		resolved, err := resolveValue(loader, raw, sel, path, dependent)
		if err != nil {
			return nil, err
		}
		out[sel.ResponseKey] = resolved
	}
	return out, nil
}

func resolveValue(loader RecordLoader, raw interface{}, sel Selection, path string, dependent ChangedKeys) (interface{}, error) {
	switch v := raw.(type) {
	case Reference:
		if len(sel.SubSelections) == 0 {
			return nil, &CacheMissError{Path: path}
		}
		nested, err := executeSelections(loader, v.Key, sel.SubSelections, path+".", dependent)
		if err != nil {
			return nil, err
		}
		return NewDataDict(nested, nil), nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			elemPath := path
			resolved, err := resolveValue(loader, elem, sel, elemPath, dependent)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		if len(sel.SubSelections) != 0 {
			return nil, &CacheMissError{Path: path}
		}
		return v, nil
	}
}
