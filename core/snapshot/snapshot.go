package snapshot

import "sort"

// Snapshot is an ordered view of a record's significant fields.
// Iteration order is always the sorted key order returned by Keys.
type Snapshot map[string]any

// Keys returns the snapshot keys in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores a normalized copy of v under key.
func (s Snapshot) Set(key string, v any) {
	s[key] = Normalize(v)
}

// Get returns the value stored under key.
func (s Snapshot) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// Without returns a shallow copy with the given top-level keys removed.
// Nested snapshots keep keys of the same name.
func (s Snapshot) Without(keys ...string) Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	return cloneValue(s).(Snapshot)
}

// Equal reports whether both snapshots hold structurally equal values.
func (s Snapshot) Equal(other Snapshot) bool {
	return ValueEqual(s, other)
}

// IsEmpty reports whether the snapshot has no fields.
func (s Snapshot) IsEmpty() bool {
	return len(s) == 0
}

// ValueEqual compares two normalized values by structure.
// nil and a missing value are not distinguished here; callers that care check
// presence before comparing.
func ValueEqual(a, b any) bool {
	switch x := a.(type) {
	case Snapshot:
		y, ok := b.(Snapshot)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !ValueEqual(xv, yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !ValueEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		switch b.(type) {
		case Snapshot, []any:
			return false
		}
		return a == b
	}
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case Snapshot:
		out := make(Snapshot, len(x))
		for k, val := range x {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
