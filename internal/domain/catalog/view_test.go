package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return NewDataset(
		[]string{"Kod", "1", "2", "3", "4", "5", "6", "7", "Model"},
		[][]any{
			{"A-1", "Erkek", "Yol Koşusu", "Yarış", "Uzun Ömürlü Taban", "Uzun Mesafe", 1.2, "Evet", "Swift"},
			{"A-2", "Kadın", "Patika", "Antrenman", "Hafif Taban", "Kısa Mesafe", 1.5, "Hayır", "Peak"},
			{"A-3", "Kadın", "Road", "Training", nil, "Orta Mesafe", "Evet uygun", "1"},
		},
	)
}

func TestBuildViewDerivesCanonicalColumns(t *testing.T) {
	ds := sampleDataset()
	view := BuildView(ds, ResolveSchema(ds.Columns, DefaultFieldSources(), OutputLetters))

	require.Equal(t, 3, view.Len())
	require.Equal(t, Derived{
		Gender:     GenderMale,
		Surface:    SurfaceRoad,
		Goal:       GoalRace,
		Durability: FlagYes,
		Distance:   DistanceLong,
		Injury:     FlagYes,
		Pronation:  FlagYes,
	}, view.Derived(0))
	require.Equal(t, Derived{
		Gender:     GenderFemale,
		Surface:    SurfaceTrail,
		Goal:       GoalTraining,
		Durability: FlagNo,
		Distance:   DistanceShort,
		Injury:     FlagNo,
		Pronation:  FlagNo,
	}, view.Derived(1))

	third := view.Derived(2)
	require.Equal(t, FlagUnknown, third.Durability)
	require.Equal(t, FlagYes, third.Injury)
	require.Equal(t, FlagYes, third.Pronation)
}

func TestBuildViewPreservesOriginalColumns(t *testing.T) {
	ds := sampleDataset()
	view := BuildView(ds, ResolveSchema(ds.Columns, DefaultFieldSources(), OutputLetters))

	require.Equal(t, append(append([]string{}, ds.Columns...), DerivedColumns...), view.Columns())

	model, ok := view.Value(0, "Model")
	require.True(t, ok)
	require.Equal(t, "Swift", model)

	padded, ok := view.Value(2, "Model")
	require.True(t, ok)
	require.Nil(t, padded)

	surface, ok := view.Value(1, ColumnSurface)
	require.True(t, ok)
	require.Equal(t, "trail", surface)

	durability, ok := view.Value(2, ColumnDurability)
	require.True(t, ok)
	require.Nil(t, durability)

	_, ok = view.Value(0, "missing")
	require.False(t, ok)
	require.True(t, view.Has(ColumnInjury))
	require.False(t, view.Has("missing"))
}

func TestBuildViewIsDeterministic(t *testing.T) {
	ds := sampleDataset()
	schema := ResolveSchema(ds.Columns, DefaultFieldSources(), OutputLetters)
	first := BuildView(ds, schema)
	second := BuildView(ds, schema)

	require.Equal(t, first.Columns(), second.Columns())
	for i := 0; i < first.Len(); i++ {
		require.Equal(t, first.Derived(i), second.Derived(i))
	}
}

func TestBuildViewPlaceholderForMissingFields(t *testing.T) {
	ds := NewDataset([]string{"only"}, [][]any{{"Erkek"}, {"Kadin"}})
	view := BuildView(ds, ResolveSchema(ds.Columns, DefaultFieldSources(), OutputLetters))

	require.Equal(t, GenderMale, view.Derived(0).Gender)
	require.Equal(t, Unknown, view.Derived(0).Surface)
	require.Equal(t, FlagUnknown, view.Derived(1).Pronation)
}

func TestNewDatasetCleansHeadersAndPadsRows(t *testing.T) {
	ds := NewDataset([]string{"a", "", "a", " b ", "a"}, [][]any{{1}, {1, 2, 3, 4, 5, 6}})

	require.Equal(t, []string{"a", "Unnamed: 1", "a.1", "b", "a.2"}, ds.Columns)
	require.Len(t, ds.Rows[0], 5)
	require.Nil(t, ds.Rows[0][4])
	require.Len(t, ds.Rows[1], 5)
	require.Equal(t, 5, ds.Value(1, 4))
	require.Nil(t, ds.Value(5, 0))

	idx, ok := ds.ColumnIndex("a.1")
	require.True(t, ok)
	require.Equal(t, 2, idx)
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot(sampleDataset(), "file:data.xlsx")

	require.NotEmpty(t, snap.ID)
	require.Equal(t, "file:data.xlsx", snap.Source)
	require.False(t, snap.LoadedAt.IsZero())
	require.Equal(t, []string{"1", "2", "3", "7"}, snap.Schema.Output)
	require.Equal(t, 3, snap.View.Len())
}
