package grib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTable_Lookup(t *testing.T) {
	table := DefaultTable()

	m, ok := table.Lookup(LevelTypeIsobaric, "z")
	require.True(t, ok)
	assert.Equal(t, "gh", m.SourceField)

	_, ok = table.Lookup(LevelTypeIsobaric, "t")
	assert.False(t, ok, "plain temperature is an identity mapping")

	_, ok = table.Lookup(LevelTypeMeanSea, "z")
	assert.False(t, ok, "unknown level type has no entries")
}

func TestTable_LevelTypeKeyingSeparatesGeopotential(t *testing.T) {
	table := DefaultTable()

	isobaric, ok := table.Lookup(LevelTypeIsobaric, "z")
	require.True(t, ok)
	surface, ok := table.Lookup(LevelTypeSurface, "z")
	require.True(t, ok)

	assert.Equal(t, "gh", isobaric.SourceField)
	assert.Equal(t, "orog", surface.SourceField)
}

func TestDefaultTable_GeopotentialTransform(t *testing.T) {
	m, ok := DefaultTable().Lookup(LevelTypeIsobaric, "z")
	require.True(t, ok)

	in := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	out := m.Transform(in)

	want := mat.NewDense(2, 2, []float64{9.81, 19.62, 29.43, 39.24})
	assert.True(t, mat.EqualApprox(want, out, 1e-9))
}

func TestDefaultTable_PrecipitationTransform(t *testing.T) {
	m, ok := DefaultTable().Lookup(LevelTypeSurface, "tp")
	require.True(t, ok)
	assert.Equal(t, "prate", m.SourceField)

	// rate / 1000 * 3600: 1 kg/m²/s over an hour is 3.6 m of water.
	in := mat.NewDense(1, 1, []float64{1})
	out := m.Transform(in)
	assert.InDelta(t, 3.6, out.At(0, 0), 1e-12)
}

func TestDefaultTable_SourceOverrides(t *testing.T) {
	table := DefaultTable()

	msl, ok := table.Lookup(LevelTypeSurface, "msl")
	require.True(t, ok)
	assert.Equal(t, "prmsl", msl.SourceField)
	assert.Equal(t, LevelTypeMeanSea, msl.SourceLevelType)
	assert.Nil(t, msl.SourceLevel)

	t2m, ok := table.Lookup(LevelTypeSurface, "2t")
	require.True(t, ok)
	assert.Equal(t, LevelTypeHeightAboveGround, t2m.SourceLevelType)
	require.NotNil(t, t2m.SourceLevel)
	assert.Equal(t, 2, *t2m.SourceLevel)

	tcwv, ok := table.Lookup(LevelTypeSurface, "tcwv")
	require.True(t, ok)
	assert.Equal(t, "pwat", tcwv.SourceField)
	assert.Equal(t, LevelTypeSingleLayer, tcwv.SourceLevelType)
}

func TestTransforms_ArePure(t *testing.T) {
	for name, tr := range map[string]Transform{
		"scale":    scaleBy(gravity),
		"identity": identity,
	} {
		t.Run(name, func(t *testing.T) {
			in := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
			snapshot := mat.DenseCopyOf(in)

			first := tr(in)
			second := tr(in)

			assert.True(t, mat.Equal(snapshot, in), "input must not be mutated")
			assert.True(t, mat.Equal(first, second), "repeated application must be deterministic")
			assert.NotSame(t, in, first, "transform must return a fresh matrix")
		})
	}
}
