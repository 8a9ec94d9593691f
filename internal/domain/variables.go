package domain

// VariableSet is an insertion-ordered set of raw variable keys.
// The zero value is an empty set.
type VariableSet struct {
	keys  []string
	index map[string]struct{}
}

// NewVariableSet builds a set, dropping duplicates and empty keys.
func NewVariableSet(keys ...string) VariableSet {
	s := VariableSet{index: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := s.index[k]; ok {
			continue
		}
		s.index[k] = struct{}{}
		s.keys = append(s.keys, k)
	}
	return s
}

// Has reports membership.
func (s VariableSet) Has(k string) bool {
	_, ok := s.index[k]
	return ok
}

// Len returns the number of keys.
func (s VariableSet) Len() int { return len(s.keys) }

// Keys returns a copy of the keys in insertion order.
func (s VariableSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Union returns a new set with the keys of s followed by the new keys of o.
func (s VariableSet) Union(o VariableSet) VariableSet {
	return NewVariableSet(append(s.Keys(), o.keys...)...)
}

// Equal reports whether both sets hold the same keys, ignoring order.
func (s VariableSet) Equal(o VariableSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, k := range s.keys {
		if !o.Has(k) {
			return false
		}
	}
	return true
}
