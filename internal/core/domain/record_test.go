package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalKeepsNumbers(t *testing.T) {
	rec := NewRecord()

	require.NoError(t, json.Unmarshal([]byte(`{"n":12345678901234567890,"x":1.50}`), rec))

	v, ok := rec.Field("n")
	require.True(t, ok)
	assert.Equal(t, json.Number("12345678901234567890"), v)
	assert.JSONEq(t, `{"n":12345678901234567890,"x":1.50}`, rec.String())
}

func TestRecord_UnmarshalRejectsNonObjects(t *testing.T) {
	for _, in := range []string{`null`, `[1]`, `"s"`, `{`, `{"a":1} garbage`, `{"a":1}{"b":2}`} {
		t.Run(in, func(t *testing.T) {
			assert.Error(t, NewRecord().UnmarshalJSON([]byte(in)))
		})
	}
}

func TestRecord_UnmarshalAllowsTrailingWhitespace(t *testing.T) {
	rec := NewRecord()
	require.NoError(t, rec.UnmarshalJSON([]byte("{\"a\":1}\n  \n")))
	assert.Equal(t, 1, rec.Len())
}

func TestRecord_FixedFields(t *testing.T) {
	rec := NewRecord()
	assert.Empty(t, rec.BedfilePath())
	assert.Empty(t, rec.ID())

	rec.SetBedfilePath("/data/a.bed.gz")
	rec.SetField(IDKey, "a")

	assert.Equal(t, "/data/a.bed.gz", rec.BedfilePath())
	assert.Equal(t, "a", rec.ID())

	rec.SetField(IDKey, 5)
	assert.Empty(t, rec.ID())
}

func TestRecord_SearchTermsAndExtra(t *testing.T) {
	rec := RecordFromMap(map[string]any{
		"cell_type":  "HeLa",
		"regions_no": 3,
	})
	rec.SetBedfilePath("/a.bed")
	terms := []string{"cell_type", "organism"}

	assert.Equal(t, map[string]any{"cell_type": "HeLa"}, rec.SearchTerms(terms))
	assert.Equal(t, map[string]any{"regions_no": 3}, rec.Extra(terms))
}

func TestRecord_KeysSorted(t *testing.T) {
	rec := RecordFromMap(map[string]any{"b": 1, "a": 2, "c": 3})

	assert.Equal(t, []string{"a", "b", "c"}, rec.Keys())
	assert.Equal(t, 3, rec.Len())
}

func TestRecord_CopiesAreIndependent(t *testing.T) {
	src := map[string]any{"a": 1}
	rec := RecordFromMap(src)
	src["a"] = 2

	v, _ := rec.Field("a")
	assert.Equal(t, 1, v)

	extra := rec.Extra(nil)
	extra["a"] = 3
	v, _ = rec.Field("a")
	assert.Equal(t, 1, v)
}

func TestRecord_ZeroValue(t *testing.T) {
	var rec Record

	assert.Equal(t, "{}", rec.String())
	rec.SetField("a", 1)
	assert.True(t, rec.Has("a"))
}
