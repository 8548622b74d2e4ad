package store

import "fmt"

// CacheKeyResolver derives a CacheKey for a composite (object) field's
// value given its GraphQL typename and its decoded field map. Returning
// false falls back to a path-based synthetic key
// ("QUERY_ROOT.field.subfield..."), the default Apollo-style behavior for
// types without a stable identity.
type CacheKeyResolver func(typename string, fields map[string]interface{}) (CacheKey, bool)

// DefaultCacheKeyResolver derives "<Typename>:<id>" when both __typename
// and id fields are present.
func DefaultCacheKeyResolver(typename string, fields map[string]interface{}) (CacheKey, bool) {
	if typename == "" {
		return "", false
	}
	id, ok := fields["id"]
	if !ok {
		return "", false
	}
	return CacheKey(fmt.Sprintf("%s:%v", typename, id)), true
}

// Normalize walks a decoded response payload (rawData, the denormalized
// field->value map produced by JSON-decoding a GraphQL response) alongside
// the selections that produced it, assigning CacheKeys per resolver and
// producing the RecordSet ready for Store.Publish.
func Normalize(rootKey CacheKey, selections []Selection, rawData map[string]interface{}, resolver CacheKeyResolver) RecordSet {
	if resolver == nil {
		resolver = DefaultCacheKeyResolver
	}
	records := make(RecordSet)
	normalizeObject(rootKey, selections, rawData, resolver, records)
	return records
}

func normalizeObject(key CacheKey, selections []Selection, rawData map[string]interface{}, resolver CacheKeyResolver, records RecordSet) {
	record := make(Record, len(selections))
	for _, sel := range selections {
		value, ok := rawData[sel.ResponseKey]
		if !ok {
			continue
		}
		storageKey := FieldCacheKey(sel.FieldName, sel.Args)
		record[storageKey] = normalizeValue(key, sel, value, resolver, records)
	}
	if existing, ok := records[key]; ok {
		for k, v := range record {
			existing[k] = v
		}
		records[key] = existing
	} else {
		records[key] = record
	}
}

func normalizeValue(parentKey CacheKey, sel Selection, value interface{}, resolver CacheKeyResolver, records RecordSet) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		if len(sel.SubSelections) == 0 {
			return v
		}
		typename, _ := v["__typename"].(string)
		childKey, ok := resolver(typename, v)
		if !ok {
			childKey = CacheKey(fmt.Sprintf("%s.%s", parentKey, sel.ResponseKey))
		}
		normalizeObject(childKey, sel.SubSelections, v, resolver, records)
		return Reference{Key: childKey}
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			indexedSel := sel
			indexedSel.ResponseKey = fmt.Sprintf("%s.%d", sel.ResponseKey, i)
			out[i] = normalizeValue(parentKey, indexedSel, elem, resolver, records)
		}
		return out
	default:
		return v
	}
}
