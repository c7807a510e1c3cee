package grib

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LevelType identifies the vertical coordinate system a record's level is
// expressed in. The values follow the eccodes typeOfLevel vocabulary so that
// inventories read the same here as in the upstream GRIB tooling.
type LevelType string

const (
	LevelTypeIsobaric          LevelType = "isobaricInhPa"
	LevelTypeSurface           LevelType = "surface"
	LevelTypeMeanSea           LevelType = "meanSea"
	LevelTypeHeightAboveGround LevelType = "heightAboveGround"
	LevelTypeSingleLayer       LevelType = "atmosphereSingleLayer"
	LevelTypeUnknown           LevelType = "unknown"
)

// Record is one self-contained gridded field message: identifying metadata
// plus the packed numeric grid. Within one store, (ShortName, LevelType,
// Level) must uniquely address every record the remapper touches; lookups
// that find more than one hit are treated as a correctness bug, not resolved
// silently.
type Record struct {
	ShortName string
	LevelType LevelType
	Level     int // hPa on isobaric levels, meters above ground, 0 for single-layer fields
	Values    *mat.Dense
}

// Clone returns a deep copy of the record. The grid payload is copied, never
// aliased, so mutating the clone cannot leak back into a source store.
func (r *Record) Clone() *Record {
	c := *r
	if r.Values != nil {
		c.Values = mat.DenseCopyOf(r.Values)
	}
	return &c
}

func (r *Record) String() string {
	return fmt.Sprintf("%s@%s:%d", r.ShortName, r.LevelType, r.Level)
}
