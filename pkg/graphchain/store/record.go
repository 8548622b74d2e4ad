package store

// Record maps a field-key to a ScalarOrReference value. A value is either a
// Reference (pointing at another CacheKey), a Scalar (any decoded JSON
// value: nil, bool, number, string, []interface{}, map[string]interface{}),
// or a []Reference / []interface{} mix for list fields of object type.
//
// Invariant: every Reference reachable from a Record points to a key that
// either already exists in the owning Store or will be merged atomically in
// the same Publish call.
type Record map[string]interface{}

// Clone returns a shallow copy of r. Field values are not deep-copied;
// Scalars are immutable JSON values and References are small value types,
// so a shallow copy is sufficient to let the copy be mutated (field
// additions/removals) without affecting the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// RecordSet maps CacheKey to Record. Key order is irrelevant; keys are
// unique within a set.
type RecordSet map[CacheKey]Record

// LoadRecord implements RecordLoader directly against the map, letting
// tests (and any caller holding a point-in-time RecordSet snapshot) drive
// Execute without a full Store.
func (rs RecordSet) LoadRecord(key CacheKey) (Record, bool) {
	r, ok := rs[key]
	return r, ok
}

// Merge applies field-by-field last-write-wins merge of other into rs,
// returning the set of CacheKeys whose serialized Record content actually
// changed (a field added, removed, or whose value differs from before).
func (rs RecordSet) Merge(other RecordSet) ChangedKeys {
	changed := make(ChangedKeys)
	for key, incoming := range other {
		existing, ok := rs[key]
		if !ok {
			rs[key] = incoming.Clone()
			changed[key] = struct{}{}
			continue
		}
		merged := existing.Clone()
		didChange := false
		for field, value := range incoming {
			if old, present := merged[field]; !present || !scalarEqual(old, value) {
				merged[field] = value
				didChange = true
			}
		}
		if didChange {
			rs[key] = merged
			changed[key] = struct{}{}
		}
	}
	return changed
}

// ChangedKeys is the set of CacheKeys affected by a Publish call.
type ChangedKeys map[CacheKey]struct{}

// Slice returns the keys as a slice, for callers that want a concrete,
// iterable collection (e.g. sorting before a table-driven test comparison).
func (c ChangedKeys) Slice() []CacheKey {
	out := make([]CacheKey, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	return out
}

// Intersects reports whether c shares at least one key with other.
func (c ChangedKeys) Intersects(other ChangedKeys) bool {
	small, big := c, other
	if len(big) < len(small) {
		small, big = big, small
	}
	for k := range small {
		if _, ok := big[k]; ok {
			return true
		}
	}
	return false
}

// scalarEqual compares two ScalarOrReference values for equality. Maps and
// slices are compared structurally since JSON decoding never produces
// pointer identity we could rely on.
func scalarEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case Reference:
		bv, ok := b.(Reference)
		return ok && av == bv
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			if !scalarEqual(v, bv[k]) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !scalarEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
