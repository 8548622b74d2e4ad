// Package store implements the normalized GraphQL response cache: a
// content-addressed record map keyed by CacheKey, with publish/subscribe
// change notification.
package store

import "fmt"

// CacheKey uniquely identifies a normalized object within a Store, e.g.
// "Hero:42" or "QUERY_ROOT.allAnimals.0". Equality is string equality;
// ordering is irrelevant.
type CacheKey string

// RootCacheKey is the well-known key for the root of every operation whose
// root selection set has no object identity of its own.
const RootCacheKey CacheKey = "QUERY_ROOT"

// FieldCacheKey derives a field-level key by (fieldName, arguments), used to
// address a field's storage slot within a Record when the field takes
// arguments that affect its result.
func FieldCacheKey(fieldName string, args map[string]interface{}) string {
	if len(args) == 0 {
		return fieldName
	}
	return fmt.Sprintf("%s(%s)", fieldName, canonicalizeArgs(args))
}

// canonicalizeArgs renders arguments in a stable, deterministic order so the
// same (fieldName, arguments) pair always derives the same field key
// regardless of map iteration order.
func canonicalizeArgs(args map[string]interface{}) string {
	keys := sortedKeys(args)
	out := make([]byte, 0, 64)
	for i, k := range keys {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, k...)
		out = append(out, ':')
		out = append(out, fmt.Sprintf("%v", args[k])...)
	}
	return string(out)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// insertion sort: argument lists are small (field arguments), and this
	// avoids pulling in sort for a handful of elements in the common case.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// Reference is a tagged value holding a CacheKey, distinguishing a pointer
// to another normalized Record from a plain Scalar value within a Record.
type Reference struct {
	Key CacheKey
}

// String implements fmt.Stringer so References print usefully in test
// failures and debug logs.
func (r Reference) String() string {
	return string(r.Key)
}
