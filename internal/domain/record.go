package domain

// Unit system names for ArchiveRecord.Units.
const (
	UnitsUS       = "us"
	UnitsMetric   = "metric"
	UnitsMetricWX = "metricwx"
)

// ArchiveRecord is one periodic sensor snapshot produced by the host data
// store. Fields maps observation names to scalar values; an absent key means
// the observation is null for this interval and must be omitted from any
// wire payload, never sent as zero.
type ArchiveRecord struct {
	// Timestamp is the observation time in epoch seconds.
	Timestamp int64

	// Units names the unit system the field values are expressed in
	// (UnitsUS, UnitsMetric or UnitsMetricWX).
	Units string

	// Fields holds the observation values keyed by field name
	// (e.g. "windSpeed", "outTemp").
	Fields map[string]float64
}

// Get returns the value for the named field and whether it is present.
func (r ArchiveRecord) Get(name string) (float64, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Clone returns a deep copy of the record. Records are cloned on enqueue so
// the queue owns its jobs exclusively and the producer may reuse its map.
func (r ArchiveRecord) Clone() ArchiveRecord {
	fields := make(map[string]float64, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return ArchiveRecord{Timestamp: r.Timestamp, Units: r.Units, Fields: fields}
}
