package domain

// FieldMapping is one entry of a destination's static field table: which
// record field is emitted under which wire key, and how it is formatted.
// Mapping tables are loaded once at startup and never mutated.
type FieldMapping struct {
	// WireKey is the query parameter name at the destination. Unique per table.
	WireKey string

	// SourceField is the ArchiveRecord field the value comes from.
	SourceField string

	// Format is the printf verb applied to the value (e.g. "%.1f").
	Format string
}
