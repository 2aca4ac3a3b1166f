package gdsf

// Section names with dedicated handling. Every other name is a generic
// section.
const (
	SectionEdge   = "edge"
	SectionMeta   = "meta"
	SectionSchema = "schema"
)

// Schema keys checked by validation.
const (
	KeyID       = "id"
	KeyName     = "name"
	KeyProperty = "property"
)

// Result is the outcome of one parse. It is never modified after parsing;
// accessors hand out copies.
type Result struct {
	edges        []Section
	meta         Section
	schemas      []Section
	sections     map[string]Section
	sectionNames []string
}

// Edges returns every [edge] body in file order.
func (r *Result) Edges() []Section {
	return cloneAll(r.edges)
}

// Meta returns the merge of every [meta] body, later keys winning.
func (r *Result) Meta() Section {
	return r.meta.Clone()
}

// Schemas returns every validated [schema] body in file order.
func (r *Result) Schemas() []Section {
	return cloneAll(r.schemas)
}

// SchemasByType returns the schemas whose property equals propertyType
// exactly, in file order. The result is empty, never nil, when none match.
func (r *Result) SchemasByType(propertyType string) []Section {
	out := []Section{}
	for _, s := range r.schemas {
		if p, ok := s.Get(KeyProperty); ok && p == propertyType {
			out = append(out, s.Clone())
		}
	}
	return out
}

// Section returns the body of the generic section called name, or an empty
// section when there is none.
func (r *Result) Section(name string) Section {
	return r.sections[name].Clone()
}

// HasSection reports whether a generic section called name was recorded.
func (r *Result) HasSection(name string) bool {
	_, ok := r.sections[name]
	return ok
}

// SectionNames returns the generic section names in first-appearance order.
func (r *Result) SectionNames() []string {
	if len(r.sectionNames) == 0 {
		return nil
	}
	out := make([]string, len(r.sectionNames))
	copy(out, r.sectionNames)
	return out
}

// WithSection returns a copy of r in which the generic section name holds
// body. An empty body removes the section, since it would not survive a
// write and re-parse anyway. Special names are not generic sections and
// leave the copy unchanged.
func (r *Result) WithSection(name string, body Section) *Result {
	c := &Result{
		edges:   cloneAll(r.edges),
		meta:    r.meta.Clone(),
		schemas: cloneAll(r.schemas),
	}
	for _, n := range r.sectionNames {
		if n == name && body.Empty() {
			continue
		}
		c.putSection(n, r.sections[n].Clone())
	}
	if isSpecial(name) || name == "" || body.Empty() {
		return c
	}
	c.putSection(name, body.Clone())
	return c
}

func (r *Result) putSection(name string, body Section) {
	if r.sections == nil {
		r.sections = make(map[string]Section)
	}
	if _, ok := r.sections[name]; !ok {
		r.sectionNames = append(r.sectionNames, name)
	}
	r.sections[name] = body
}

func isSpecial(name string) bool {
	return name == SectionEdge || name == SectionMeta || name == SectionSchema
}

func cloneAll(in []Section) []Section {
	if len(in) == 0 {
		return nil
	}
	out := make([]Section, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
