// Package schema holds the per-source field mapping tables that translate
// between external directory field names and the canonical column names used
// by the stored models. The tables are built once at startup and shared
// read-only; lookups never fail, absent entries just report not-found.
package schema

// Mapping is a bidirectional lookup between canonical field names and the
// external names a directory source uses for them.
type Mapping struct {
	toExternal  map[string]string
	toCanonical map[string]string
}

// NewMapping builds a Mapping from a canonical-to-external table.
func NewMapping(canonicalToExternal map[string]string) *Mapping {
	m := &Mapping{
		toExternal:  make(map[string]string, len(canonicalToExternal)),
		toCanonical: make(map[string]string, len(canonicalToExternal)),
	}

	for canonical, external := range canonicalToExternal {
		m.toExternal[canonical] = external
		m.toCanonical[external] = canonical
	}

	return m
}

// ToExternal returns the external field name for a canonical one.
func (m *Mapping) ToExternal(canonical string) (string, bool) {
	external, ok := m.toExternal[canonical]
	return external, ok
}

// ToCanonical returns the canonical field name for an external one.
func (m *Mapping) ToCanonical(external string) (string, bool) {
	canonical, ok := m.toCanonical[external]
	return canonical, ok
}

// Externals returns all external field names known to the mapping.
func (m *Mapping) Externals() []string {
	out := make([]string, 0, len(m.toCanonical))
	for external := range m.toCanonical {
		out = append(out, external)
	}

	return out
}
