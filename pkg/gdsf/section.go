package gdsf

// Section is the body of one section occurrence: string keys mapped to
// string values. Key insertion order is preserved. The zero value is an
// empty section ready to use.
type Section struct {
	keys   []string
	values map[string]string
}

// NewSection builds a section from alternating key/value arguments.
// A trailing key without a value is ignored.
func NewSection(kv ...string) Section {
	var s Section
	for i := 0; i+1 < len(kv); i += 2 {
		s.Set(kv[i], kv[i+1])
	}
	return s
}

// Get returns the value stored under key and whether it was present.
func (s Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Value returns the value stored under key, or "" when absent.
func (s Section) Value(key string) string {
	return s.values[key]
}

// Has reports whether key is present.
func (s Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Set stores value under key. An existing key keeps its position.
func (s *Section) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Len returns the number of keys.
func (s Section) Len() int {
	return len(s.keys)
}

// Empty reports whether the section has no keys.
func (s Section) Empty() bool {
	return len(s.keys) == 0
}

// Keys returns the keys in insertion order.
func (s Section) Keys() []string {
	if len(s.keys) == 0 {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Map returns a copy of the section as a plain map.
func (s Section) Map() map[string]string {
	out := make(map[string]string, len(s.keys))
	for _, k := range s.keys {
		out[k] = s.values[k]
	}
	return out
}

// Clone returns a deep copy that shares no storage with s.
func (s Section) Clone() Section {
	var c Section
	for _, k := range s.keys {
		c.Set(k, s.values[k])
	}
	return c
}

// merge copies every key of other into s, overwriting existing values.
func (s *Section) merge(other Section) {
	for _, k := range other.keys {
		s.Set(k, other.values[k])
	}
}
