package grib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testRecord(name string, levelType LevelType, level int, fill float64) *Record {
	return &Record{
		ShortName: name,
		LevelType: levelType,
		Level:     level,
		Values:    mat.NewDense(2, 2, []float64{fill, fill, fill, fill}),
	}
}

func TestSelectOne_UniqueMatch(t *testing.T) {
	pool := []*Record{
		testRecord("gh", LevelTypeIsobaric, 500, 5500),
		testRecord("gh", LevelTypeIsobaric, 850, 1500),
		testRecord("t", LevelTypeIsobaric, 500, 250),
	}

	got, err := SelectOne(pool, Matchers{
		MatchShortName: "gh",
		MatchLevelType: LevelTypeIsobaric,
		MatchLevel:     850,
	})
	require.NoError(t, err)
	assert.Same(t, pool[1], got)
}

func TestSelectOne_NoMatch(t *testing.T) {
	pool := []*Record{testRecord("t", LevelTypeIsobaric, 500, 250)}

	_, err := SelectOne(pool, Matchers{MatchShortName: "gh"})
	require.Error(t, err)

	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Contains(t, noMatch.Error(), "shortName=gh")
}

func TestSelectOne_AmbiguousMatch(t *testing.T) {
	pool := []*Record{
		testRecord("gh", LevelTypeIsobaric, 500, 5500),
		testRecord("gh", LevelTypeIsobaric, 850, 1500),
	}

	_, err := SelectOne(pool, Matchers{MatchShortName: "gh"})
	require.Error(t, err)

	var ambiguous *AmbiguousMatchError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.Hits)
	assert.Contains(t, ambiguous.Error(), "2 records")
}

func TestSelectOne_PoolNotMutated(t *testing.T) {
	pool := []*Record{
		testRecord("gh", LevelTypeIsobaric, 500, 5500),
		testRecord("t", LevelTypeIsobaric, 500, 250),
	}
	before := []*Record{pool[0], pool[1]}

	_, err := SelectOne(pool, Matchers{MatchShortName: "gh"})
	require.NoError(t, err)
	_, err = SelectOne(pool, Matchers{MatchShortName: "nope"})
	require.Error(t, err)

	assert.Equal(t, before, pool)
}

func TestMatchers_LevelTypeAcceptsString(t *testing.T) {
	r := testRecord("t", LevelTypeSurface, 0, 288)

	assert.True(t, Matchers{MatchLevelType: "surface"}.Match(r))
	assert.True(t, Matchers{MatchLevelType: LevelTypeSurface}.Match(r))
	assert.False(t, Matchers{MatchLevelType: "meanSea"}.Match(r))
}

func TestMatchers_UnknownKeyNeverMatches(t *testing.T) {
	r := testRecord("t", LevelTypeSurface, 0, 288)
	assert.False(t, Matchers{"typeOfGrid": "regular_ll"}.Match(r))
}

func TestMatchers_StringIsStable(t *testing.T) {
	m := Matchers{
		MatchLevel:     500,
		MatchShortName: "gh",
		MatchLevelType: LevelTypeIsobaric,
	}
	assert.Equal(t, "{level=500 levelType=isobaricInhPa shortName=gh}", m.String())
}

func TestSelectOne_EmptyPool(t *testing.T) {
	_, err := SelectOne(nil, Matchers{MatchShortName: "gh"})
	var noMatch *NoMatchError
	assert.True(t, errors.As(err, &noMatch))
}
