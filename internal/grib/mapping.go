package grib

import "gonum.org/v1/gonum/mat"

// Physical constants used by the field transforms.
const (
	gravity        = 9.81   // m/s²
	waterDensity   = 1000.0 // kg/m³
	secondsPerHour = 3600.0
)

// Transform is a pure function over a grid payload. Implementations must
// return a fresh matrix and leave the input untouched, and must be total over
// the physically valid domain of their field.
type Transform func(g *mat.Dense) *mat.Dense

// Mapping describes how one template field is populated from the source
// collection: which source field to read, the numeric transform to apply, and
// optional level-type/level overrides to use when searching the source
// instead of inheriting the template slot's own metadata.
type Mapping struct {
	SourceField     string
	Transform       Transform
	SourceLevelType LevelType // empty: inherit the slot's level type
	SourceLevel     *int      // nil: inherit the slot's level
}

// Table is the two-level field mapping: level type first, then target field.
// Keying by level type first matters because several short names (notably
// geopotential) are legitimately defined at multiple level types with
// different physical meaning and different required source fields.
//
// Absence of an entry means identity mapping: the slot is populated from a
// source record with identical (shortName, levelType, level) and no rename or
// transform.
type Table map[LevelType]map[string]Mapping

// Lookup returns the mapping for a (level type, target field) pair. The
// boolean distinguishes the mapped branch from the identity branch so callers
// have no hidden fallback logic.
func (t Table) Lookup(levelType LevelType, targetField string) (Mapping, bool) {
	byField, ok := t[levelType]
	if !ok {
		return Mapping{}, false
	}
	m, ok := byField[targetField]
	return m, ok
}

func scaleBy(factor float64) Transform {
	return func(g *mat.Dense) *mat.Dense {
		var out mat.Dense
		out.Scale(factor, g)
		return &out
	}
}

func identity(g *mat.Dense) *mat.Dense {
	return mat.DenseCopyOf(g)
}

// DefaultTable returns the mappings between the GDAS/GFS analysis naming
// scheme and the ECMWF-style field set the model templates use.
func DefaultTable() Table {
	lvl := func(n int) *int { return &n }

	return Table{
		LevelTypeIsobaric: {
			// Geopotential height (gpm) to geopotential (m²/s²).
			"z": {SourceField: "gh", Transform: scaleBy(gravity)},
		},
		LevelTypeSurface: {
			// GDAS has no surface geopotential; orography is the standard
			// stand-in, converted the same way as the isobaric levels.
			"z": {SourceField: "orog", Transform: scaleBy(gravity)},

			// Same quantity, but filed under the meanSea level type in the
			// analysis output.
			"msl": {SourceField: "prmsl", Transform: identity, SourceLevelType: LevelTypeMeanSea},

			// Near-surface fields live at fixed heights above ground.
			"10u":  {SourceField: "10u", Transform: identity, SourceLevelType: LevelTypeHeightAboveGround, SourceLevel: lvl(10)},
			"10v":  {SourceField: "10v", Transform: identity, SourceLevelType: LevelTypeHeightAboveGround, SourceLevel: lvl(10)},
			"100u": {SourceField: "100u", Transform: identity, SourceLevelType: LevelTypeHeightAboveGround, SourceLevel: lvl(100)},
			"100v": {SourceField: "100v", Transform: identity, SourceLevelType: LevelTypeHeightAboveGround, SourceLevel: lvl(100)},
			"2t":   {SourceField: "2t", Transform: identity, SourceLevelType: LevelTypeHeightAboveGround, SourceLevel: lvl(2)},

			// Total column water vapor is reported as precipitable water over
			// the whole atmosphere.
			"tcwv": {SourceField: "pwat", Transform: identity, SourceLevelType: LevelTypeSingleLayer, SourceLevel: lvl(0)},

			// Instantaneous precipitation rate (kg/m²/s) to a 1-hour
			// accumulation (m): divide by the density of water, scale to an
			// hour. A rough approximation, kept verbatim for parity with the
			// existing pipeline.
			"tp": {SourceField: "prate", Transform: scaleBy(secondsPerHour / waterDensity)},
		},
	}
}
