package gdsf

import "strings"

// validateSchema checks a closed [schema] body and records its id in seen.
// line is the line that closed the section.
func validateSchema(body Section, line int, seen map[string]struct{}) error {
	id := body.Value(KeyID)
	fail := func(reason string) error {
		return &ValidationError{SchemaID: id, Line: line, Reason: reason}
	}

	name, ok := body.Get(KeyName)
	if !ok {
		return fail("missing property 'name'")
	}
	if stripSpaces(name) == "" {
		return fail("'name' is empty")
	}
	if id == "" {
		return fail("missing 'id'")
	}
	if _, dup := seen[id]; dup {
		return fail("duplicate schema id '" + id + "'")
	}

	if prop := stripSpaces(body.Value(KeyProperty)); strings.ContainsAny(prop, ",;") {
		return fail("multiple properties '" + prop + "'; only one property is allowed (e.g. 'component' or 'mechanic')")
	}

	seen[id] = struct{}{}
	return nil
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
