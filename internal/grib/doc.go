// Package grib models gridded meteorological field records and the static
// field mappings between the operational GDAS/GFS naming scheme and the
// ECMWF-style field set that AI weather model templates use.
//
// # Records and level types
//
// A record is one gridded field message: a short field name, a vertical level
// type, a numeric level, and a 2-D grid payload. Level types follow the
// eccodes typeOfLevel vocabulary:
//
//	isobaricInhPa          pressure surface, level in hPa (1000 … 50)
//	surface                the ground; level is 0
//	meanSea                mean sea level; level is 0
//	heightAboveGround      fixed height, level in meters (2, 10, 100)
//	atmosphereSingleLayer  whole-column integral; level is 0
//
// The triple (shortName, levelType, level) uniquely addresses a record within
// one file for every field the remapper handles. The same short name at
// different level types is a different physical quantity: "z" on an isobaric
// surface is geopotential of that pressure level, while "z" at the surface is
// the geopotential of the terrain.
//
// # Field mappings
//
// Mappings are keyed level type first, then target field, replacing what
// would otherwise be a chain of conditionals over ad hoc attribute
// combinations. Each entry names the source field to read, a pure numeric
// transform, and optional level-type/level overrides for the source search.
// Documented conversions:
//
//	gh → z       multiply by g = 9.81 m/s² (height in gpm → geopotential in m²/s²)
//	orog → z     same conversion; surface geopotential approximated by orography
//	prmsl → msl  identity, searched under the meanSea level type
//	pwat → tcwv  identity, searched as a single-layer field
//	prate → tp   rate / 1000 kg/m³ × 3600 s, a rough 1-hour accumulation
//
// # Selection
//
// [SelectOne] enforces exactly-one-match semantics. Zero or multiple hits are
// distinct, inspectable errors carrying the matcher set; a multiple hit means
// a malformed source file or an under-constrained mapping entry and is never
// resolved by picking the first record.
package grib
