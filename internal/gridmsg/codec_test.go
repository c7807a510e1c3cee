package gridmsg

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/overcastwx/grib-remap/internal/grib"
)

func sampleRecords() []*grib.Record {
	return []*grib.Record{
		{
			ShortName: "gh",
			LevelType: grib.LevelTypeIsobaric,
			Level:     500,
			Values:    mat.NewDense(2, 3, []float64{5500, 5501.5, 5502, 5503, 5504.25, 5505}),
		},
		{
			ShortName: "prmsl",
			LevelType: grib.LevelTypeMeanSea,
			Level:     0,
			Values:    mat.NewDense(1, 2, []float64{101325, 101200}),
		},
		{
			ShortName: "2t",
			LevelType: grib.LevelTypeHeightAboveGround,
			Level:     2,
			Values:    mat.NewDense(2, 2, []float64{288.15, 290, -12.5, 301.33}),
		},
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	want := sampleRecords()

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, rec := range want {
		require.NoError(t, enc.Encode(rec))
	}
	require.NoError(t, enc.Flush())

	dec := NewDecoder(&buf)
	for _, w := range want {
		got, err := dec.Next()
		require.NoError(t, err)
		assert.Equal(t, w.ShortName, got.ShortName)
		assert.Equal(t, w.LevelType, got.LevelType)
		assert.Equal(t, w.Level, got.Level)
		assert.True(t, mat.Equal(w.Values, got.Values))
	}

	_, err := dec.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCodec_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.grid")
	want := sampleRecords()

	require.NoError(t, WriteFile(path, want))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ShortName, got[i].ShortName, "record %d", i)
		assert.True(t, mat.Equal(want[i].Values, got[i].Values), "record %d", i)
	}
}

func TestDecoder_BadMagic(t *testing.T) {
	dec := NewDecoder(bytes.NewReader([]byte("NOPE....")))
	_, err := dec.Next()
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestDecoder_TruncatedMessage(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.Encode(sampleRecords()[0]))
	require.NoError(t, enc.Flush())

	// Chop off the tail of the payload.
	truncated := buf.Bytes()[:buf.Len()-10]

	dec := NewDecoder(bytes.NewReader(truncated))
	_, err := dec.Next()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestEncoder_RejectsEmptyValues(t *testing.T) {
	var buf bytes.Buffer
	err := NewEncoder(&buf).Encode(&grib.Record{ShortName: "t", LevelType: grib.LevelTypeSurface})
	assert.Error(t, err)
}
