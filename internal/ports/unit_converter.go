package ports

// UnitConverter converts a scalar value between named physical units.
// Conversion fails with domain.ErrUnknownUnit when either unit is
// unrecognized.
type UnitConverter interface {
	// Convert converts value from one unit to another.
	Convert(value float64, from, to string) (float64, error)
}
