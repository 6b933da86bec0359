package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLetterIndex(t *testing.T) {
	cases := []struct {
		letter string
		index  int
		ok     bool
	}{
		{"A", 0, true},
		{"b", 1, true},
		{"Z", 25, true},
		{"AA", 26, true},
		{"AZ", 51, true},
		{"BA", 52, true},
		{"", 0, false},
		{"A1", 0, false},
		{"Ç", 0, false},
	}
	for _, tc := range cases {
		idx, ok := LetterIndex(tc.letter)
		require.Equal(t, tc.ok, ok, tc.letter)
		if tc.ok {
			require.Equal(t, tc.index, idx, tc.letter)
		}
	}
}

func TestResolveColumnsFirstColumn(t *testing.T) {
	require.Equal(t, []string{"code"}, ResolveColumns([]string{"code", "name"}, []string{"A"}))
	require.Empty(t, ResolveColumns(nil, []string{"A"}))
}

func TestResolveColumnsSkipsOutOfRange(t *testing.T) {
	columns := []string{"c1", "c2", "c3", "c4", "c5"}
	require.Equal(t, []string{"c2"}, ResolveColumns(columns, []string{"B", "Z"}))
	require.Equal(t, []string{"c5", "c1", "c5"}, ResolveColumns(columns, []string{"E", "F", "A", "??", "E"}))
}

func TestResolveColumnsDefaultLetters(t *testing.T) {
	columns := make([]string, 0, 16)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P"} {
		columns = append(columns, "col"+name)
	}
	got := ResolveColumns(columns, OutputLetters)
	require.Equal(t, []string{"colB", "colC", "colD", "colH", "colK", "colL", "colM", "colN", "colO", "colP"}, got)
	require.LessOrEqual(t, len(ResolveColumns(columns[:9], OutputLetters)), 10)
	require.Equal(t, []string{"colB", "colC", "colD", "colH"}, ResolveColumns(columns[:9], OutputLetters))
}

func TestResolveSchemaPrefersNamesOverPositions(t *testing.T) {
	columns := []string{"Kod", "1", "2", "3", "4", "5", "6", "7", "Model"}
	schema := ResolveSchema(columns, DefaultFieldSources(), OutputLetters)

	require.Len(t, schema.Fields, len(Fields))
	for i, f := range schema.Fields {
		require.Equal(t, Fields[i], f.Field)
		require.Equal(t, ResolvedByName, f.By)
		require.Equal(t, i+1, f.Index)
	}
	require.Equal(t, []string{"1", "2", "3", "7"}, schema.Output)
	require.Empty(t, schema.Absent())
}

func TestResolveSchemaFallsBackToPosition(t *testing.T) {
	columns := []string{"gender", "surface", "goal"}
	schema := ResolveSchema(columns, DefaultFieldSources(), nil)

	require.Equal(t, 0, schema.Index(FieldGender))
	require.Equal(t, 2, schema.Index(FieldGoal))
	require.Equal(t, -1, schema.Index(FieldDurability))
	require.Equal(t, ResolvedByPosition, schema.Fields[0].By)
	require.Equal(t, []Field{FieldDurability, FieldDistance, FieldInjury, FieldPronation}, schema.Absent())
	require.Empty(t, schema.Output)
}
