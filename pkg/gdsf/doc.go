// Package gdsf reads and writes GDSF, the line-oriented section format used
// to persist VIOLETA design state.
//
//	# comment
//	[theme]
//	name = "Space Station"
//	description = "first line
//
//	third line"
//
//	[edge]
//	from = A
//	to = B
//
//	[meta]
//	version = "1"
//
//	[schema]
//	id = s1
//	name = "Jump"
//	property = mechanic
//
// Bodies of [edge] sections are collected in order, [meta] bodies are merged,
// and [schema] bodies are validated: each needs a non-blank name, an id that
// is unique in the file and at most one property. Any other header names a
// generic section; a repeated name replaces the earlier body. Lines without
// '=' outside a quoted multi-line value are ignored.
package gdsf
