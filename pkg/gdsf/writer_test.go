package gdsf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_RoundTrip(t *testing.T) {
	res, err := ParseString(fullDoc)
	require.NoError(t, err)

	data, err := Marshal(res)
	require.NoError(t, err)

	again, err := ParseString(string(data))
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestMarshal_Layout(t *testing.T) {
	res, err := ParseString("[schema]\nid = s1\nname = Jump\n[edge]\nfrom = A\n[theme]\nname = Sea\n[meta]\nv = 1\n")
	require.NoError(t, err)

	data, err := Marshal(res)
	require.NoError(t, err)

	want := `[meta]
v = "1"

[theme]
name = "Sea"

[edge]
from = "A"

[schema]
id = "s1"
name = "Jump"

`
	assert.Equal(t, want, string(data))
}

func TestMarshal_EmptyResult(t *testing.T) {
	data, err := Marshal(&Result{})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWriter_MultiLineValueRoundTrip(t *testing.T) {
	values := []string{
		"line1\n\nline3",
		"  leading spaces\nkept",
		"trailing newline\n",
		"last line ends in quote\n\"quoted\"",
		"{\n  \"a\": [1, 2],\n  \"b\": {}\n}",
		"# looks like a comment\n[looks like a header]\nend",
		"single line with \"quotes\" inside",
		"\"a JSON string literal\"",
		"",
	}

	for _, v := range values {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		require.NoError(t, w.WriteSection("theme", NewSection("value", v)))
		require.NoError(t, w.Flush())

		res, err := ParseString(buf.String())
		require.NoError(t, err)
		assert.Equal(t, v, res.Section("theme").Value("value"), "encoded as %q", buf.String())
	}
}

func TestWriter_RejectsValuesThatWouldNotRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		section string
		key     string
		value   string
		reason  string
	}{
		{"blank first line", "theme", "value", "\nsecond", "blank line"},
		{"first line trailing space", "theme", "value", "first  \nsecond", "ends in whitespace"},
		{"first line ends in quote", "theme", "value", "say \"hi\"\nbye", `ends in '"'`},
		{"inner line ends in quote", "theme", "value", "a\n\"b\"\nc", "inner line"},
		{"carriage return", "theme", "value", "a\rb", "carriage return"},
		{"empty key", "theme", "", "x", "empty key"},
		{"key with equals", "theme", "a=b", "x", "'='"},
		{"comment key", "theme", "#k", "x", "comment"},
		{"header-like key", "notes", "[tag", "foo]\nbar", "section header"},
		{"bracketed key single line", "notes", "[tag]", "x", "section header"},
		{"padded key", "theme", " k", "x", "whitespace"},
		{"empty section name", "", "k", "x", "empty section name"},
		{"multi-line section name", "a\nb", "k", "x", "spans lines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			err := w.WriteSection(tt.section, NewSection(tt.key, tt.value))
			require.NoError(t, w.Flush())

			var encErr *EncodeError
			require.ErrorAs(t, err, &encErr)
			assert.Contains(t, encErr.Reason, tt.reason)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestMarshal_RejectsHeaderLikeKey(t *testing.T) {
	doc := (&Result{}).WithSection("notes", NewSection("[tag", "foo]\nbar", "after", "x"))

	data, err := Marshal(doc)
	assert.Nil(t, data)

	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "notes", encErr.Section)
	assert.Equal(t, "[tag", encErr.Key)
}

func TestResult_WithSection(t *testing.T) {
	res, err := ParseString(fullDoc)
	require.NoError(t, err)

	updated := res.WithSection("atomic_unit", NewSection("value", "a lever"))
	assert.Equal(t, []string{"theme", "atomic_unit"}, updated.SectionNames())
	assert.Equal(t, "a lever", updated.Section("atomic_unit").Value("value"))
	assert.False(t, res.HasSection("atomic_unit"))

	replaced := updated.WithSection("theme", NewSection("name", "Forest"))
	assert.Equal(t, []string{"theme", "atomic_unit"}, replaced.SectionNames())
	assert.Equal(t, map[string]string{"name": "Forest"}, replaced.Section("theme").Map())

	removed := replaced.WithSection("theme", Section{})
	assert.Equal(t, []string{"atomic_unit"}, removed.SectionNames())

	special := res.WithSection(SectionSchema, NewSection("id", "x"))
	assert.Equal(t, res, special)

	assert.Len(t, replaced.Schemas(), 3)
	assert.Len(t, replaced.Edges(), 1)
	assert.Equal(t, "1", replaced.Meta().Value("version"))
}

func TestNewSection(t *testing.T) {
	s := NewSection("b", "2", "a", "1", "b", "3", "dangling")
	assert.Equal(t, []string{"b", "a"}, s.Keys())
	assert.Equal(t, "3", s.Value("b"))
	assert.False(t, s.Has("dangling"))
	assert.Equal(t, 2, s.Len())
	assert.True(t, strings.HasPrefix(strings.Join(s.Keys(), ","), "b"))
}
