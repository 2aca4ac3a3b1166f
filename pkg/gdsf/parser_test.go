package gdsf

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.gdsf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

const fullDoc = `# VIOLETA design state
[theme]
name = "Space Station"
description = "Crew keeps the
station alive"

[edge]
from = A
to = B

[meta]
version = "1"

[schema]
id = s1
name = "Jump"
property = mechanic

[schema]
id = s2
name = "Door"
property = component

[schema]
id = s3
name = "Dash"
property = mechanic
`

func TestParseFile_SingleSchema(t *testing.T) {
	path := writeFixture(t, "[schema]\nid = s1\nname = \"Jump\"\nproperty = mechanic\n")

	res, err := ParseFile(path)
	require.NoError(t, err)

	schemas := res.Schemas()
	require.Len(t, schemas, 1)
	assert.Equal(t, map[string]string{"id": "s1", "name": "Jump", "property": "mechanic"}, schemas[0].Map())
	assert.Equal(t, []string{"id", "name", "property"}, schemas[0].Keys())

	mechanics := res.SchemasByType("mechanic")
	require.Len(t, mechanics, 1)
	assert.Equal(t, "s1", mechanics[0].Value("id"))
}

func TestParseFile_SchemaWithoutProperty(t *testing.T) {
	path := writeFixture(t, "[schema]\nid = T1\nname = \"Foo\"\n")

	res, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, res.Schemas(), 1)
	assert.Equal(t, "T1", res.Schemas()[0].Value("id"))
	assert.Empty(t, res.SchemasByType(""))
}

func TestParseFile_Idempotent(t *testing.T) {
	path := writeFixture(t, fullDoc)

	first, err := ParseFile(path)
	require.NoError(t, err)
	second, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseFile_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.gdsf")

	res, err := ParseFile(path)
	assert.Nil(t, res)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestParse_ReadFailure(t *testing.T) {
	_, err := Parse(failingReader{})

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, errBroken)
}

var errBroken = errors.New("broken pipe")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBroken }

func TestParseString_SchemaValidation(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantID     string
		wantLine   int
		wantReason string
	}{
		{
			name:       "duplicate id",
			input:      "[schema]\nid = dup\nname = A\n\n[schema]\nid = dup\nname = B\n",
			wantID:     "dup",
			wantLine:   7,
			wantReason: "duplicate",
		},
		{
			name:       "missing name reports closing header line",
			input:      "[schema]\nid = s1\n\n[theme]\nvalue = x\n",
			wantID:     "s1",
			wantLine:   4,
			wantReason: "missing property 'name'",
		},
		{
			name:       "blank name",
			input:      "[schema]\nid = s1\nname = \"   \"\n",
			wantID:     "s1",
			wantLine:   3,
			wantReason: "'name' is empty",
		},
		{
			name:       "missing id",
			input:      "[schema]\nname = Jump\n[edge]\nfrom = a\n",
			wantID:     "",
			wantLine:   3,
			wantReason: "missing 'id'",
		},
		{
			name:       "empty id",
			input:      "[schema]\nid =\nname = Jump\n",
			wantID:     "",
			wantLine:   3,
			wantReason: "missing 'id'",
		},
		{
			name:       "comma separated properties",
			input:      "[schema]\nid = s1\nname = Jump\nproperty = mechanic, component\n",
			wantID:     "s1",
			wantLine:   4,
			wantReason: "multiple properties 'mechanic,component'",
		},
		{
			name:       "semicolon separated properties",
			input:      "[schema]\nid = s9\nname = Jump\nproperty = mechanic;component\n",
			wantID:     "s9",
			wantLine:   4,
			wantReason: "multiple properties",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantID, vErr.SchemaID)
			assert.Equal(t, tt.wantLine, vErr.Line)
			assert.Contains(t, vErr.Reason, tt.wantReason)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	_, err := ParseString("[schema]\nid = dup\nname = A\n[schema]\nid = dup\nname = B\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup")
	assert.Contains(t, err.Error(), "line 6")

	_, err = ParseString("[schema]\nname = A\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'?'")
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseString_DuplicateIDAcrossFile(t *testing.T) {
	input := `[schema]
id = a
name = First

[theme]
value = between

[schema]
id = a
name = Second
`
	_, err := ParseString(input)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "'a'")
}

func TestParseString_MultiLineValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "blank line preserved",
			input: "[theme]\nvalue = \"Line1\n\nLine3\"\n",
			want:  "Line1\n\nLine3",
		},
		{
			name:  "comment and header lookalikes are data",
			input: "[theme]\nvalue = \"intro\n# not a comment\n[not_a_section]\nend\"\n",
			want:  "intro\n# not a comment\n[not_a_section]\nend",
		},
		{
			name:  "indentation of inner lines kept",
			input: "[theme]\nvalue = \"a\n    b\n  c\"\n",
			want:  "a\n    b\n  c",
		},
		{
			name:  "trailing whitespace after closing quote",
			input: "[theme]\nvalue = \"a\nb\"   \n",
			want:  "a\nb",
		},
		{
			name:  "crlf line endings",
			input: "[theme]\r\nvalue = \"a\r\n\r\nb\"\r\n",
			want:  "a\n\nb",
		},
		{
			name:  "unterminated at end of file",
			input: "[theme]\nvalue = \"a\nb\n",
			want:  "\"a\nb",
		},
		{
			name:  "json payload",
			input: "[skill_kernels]\nvalue = \"{\n  \"Skill\": [1, 2]\n}\"\n",
			want:  "{\n  \"Skill\": [1, 2]\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseString(tt.input)
			require.NoError(t, err)
			section := res.Section(strings.Split(strings.TrimPrefix(tt.input, "["), "]")[0])
			assert.Equal(t, tt.want, section.Value("value"))
		})
	}
}

func TestParseString_MultiLineKeepsFollowingKeys(t *testing.T) {
	res, err := ParseString("[theme]\nname = \"Sea\"\ndescription = \"one\n\nthree\"\nmood = calm\n")
	require.NoError(t, err)

	theme := res.Section("theme")
	assert.Equal(t, []string{"name", "description", "mood"}, theme.Keys())
	assert.Equal(t, "one\n\nthree", theme.Value("description"))
	assert.Equal(t, "calm", theme.Value("mood"))
}

func TestParseString_MetaMerge(t *testing.T) {
	res, err := ParseString("[meta]\na = 1\n\n[meta]\na = 2\nb = 3\n")
	require.NoError(t, err)

	meta := res.Meta()
	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, meta.Map())
	assert.Equal(t, []string{"a", "b"}, meta.Keys())
}

func TestParseString_EdgeAccumulation(t *testing.T) {
	res, err := ParseString("[edge]\nfrom = A\nto = B\n[edge]\nfrom = B\nto = C\n[edge]\nfrom = A\nto = B\n")
	require.NoError(t, err)

	edges := res.Edges()
	require.Len(t, edges, 3)
	assert.Equal(t, "A", edges[0].Value("from"))
	assert.Equal(t, "C", edges[1].Value("to"))
	assert.Equal(t, edges[0].Map(), edges[2].Map())
}

func TestParseString_Lookup(t *testing.T) {
	res, err := ParseString(fullDoc)
	require.NoError(t, err)

	mechanics := res.SchemasByType("mechanic")
	require.Len(t, mechanics, 2)
	assert.Equal(t, "s1", mechanics[0].Value("id"))
	assert.Equal(t, "s3", mechanics[1].Value("id"))

	assert.Empty(t, res.SchemasByType("Mechanic"))
	assert.Empty(t, res.SchemasByType(" mechanic"))
	assert.NotNil(t, res.SchemasByType("none"))

	missing := res.Section("missing")
	assert.True(t, missing.Empty())
	assert.Empty(t, missing.Map())
	assert.False(t, res.HasSection("missing"))
}

func TestParseString_LenientLines(t *testing.T) {
	input := `stray = before any header
[]
lost = true
[theme]
this line has no equals sign
name = Sea
[weird name!]
k = v
`
	res, err := ParseString(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"theme", "weird name!"}, res.SectionNames())
	assert.Equal(t, map[string]string{"name": "Sea"}, res.Section("theme").Map())
	assert.Equal(t, "v", res.Section("weird name!").Value("k"))
}

func TestParseString_EmptySectionsDropped(t *testing.T) {
	res, err := ParseString("[theme]\n[edge]\n[meta]\n# nothing\n[schema]\n")
	require.NoError(t, err)

	assert.Empty(t, res.SectionNames())
	assert.Empty(t, res.Edges())
	assert.Empty(t, res.Schemas())
	assert.True(t, res.Meta().Empty())
}

func TestParseString_DuplicateGenericSectionOverwrites(t *testing.T) {
	res, err := ParseString("[theme]\nname = Old\nextra = 1\n[other]\nk = v\n[theme]\nname = New\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"name": "New"}, res.Section("theme").Map())
	assert.Equal(t, []string{"theme", "other"}, res.SectionNames())
}

func TestParseString_ValueQuoting(t *testing.T) {
	res, err := ParseString(`[v]
plain = hello world
quoted = "  padded  "
inner = "say "hi""
literal = ""a pressure plate""
empty = ""
lone = "
equals = a=b
spaced   =   x
`)
	require.NoError(t, err)

	v := res.Section("v")
	assert.Equal(t, "hello world", v.Value("plain"))
	assert.Equal(t, "  padded  ", v.Value("quoted"))
	assert.Equal(t, `say "hi"`, v.Value("inner"))
	assert.Equal(t, `"a pressure plate"`, v.Value("literal"))
	assert.Equal(t, "", v.Value("empty"))
	assert.Equal(t, "", v.Value("lone"))
	assert.Equal(t, "a=b", v.Value("equals"))
	assert.Equal(t, "x", v.Value("spaced"))
}

func TestResult_AccessorsReturnCopies(t *testing.T) {
	res, err := ParseString(fullDoc)
	require.NoError(t, err)

	theme := res.Section("theme")
	theme.Set("name", "changed")
	schemas := res.Schemas()
	schemas[0].Set("id", "changed")

	assert.Equal(t, "Space Station", res.Section("theme").Value("name"))
	assert.Equal(t, "s1", res.Schemas()[0].Value("id"))
}
