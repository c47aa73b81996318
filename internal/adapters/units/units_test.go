package units

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wx-labs/wxship/internal/domain"
)

func TestConverter_Convert(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{"mps to knots", 5.0, MeterPerSecond, Knot, 9.72},
		{"knots to mps", 10.0, Knot, MeterPerSecond, 5.14},
		{"F to C", 68.0, DegreeF, DegreeC, 20.0},
		{"C to F", 20.0, DegreeC, DegreeF, 68.0},
		{"mph to mps", 10.0, MilePerHour, MeterPerSecond, 4.47},
		{"kmh to mps", 36.0, KmPerHour, MeterPerSecond, 10.0},
		{"inHg to hPa", 29.92, InHg, HPa, 1013.21},
		{"inch_per_hour to mm_per_hour", 1.0, InchPerHour, MmPerHour, 25.4},
		{"same unit is identity", 42.0, HPa, HPa, 42.0},
		{"mbar equals hPa", 1013.0, Mbar, HPa, 1013.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestConverter_Convert_Errors(t *testing.T) {
	c := NewConverter()

	_, err := c.Convert(1.0, "furlong_per_fortnight", MeterPerSecond)
	require.ErrorIs(t, err, domain.ErrUnknownUnit)

	_, err = c.Convert(1.0, MeterPerSecond, "furlong_per_fortnight")
	require.ErrorIs(t, err, domain.ErrUnknownUnit)

	// Cross-group conversion is meaningless.
	_, err = c.Convert(1.0, DegreeC, MeterPerSecond)
	require.ErrorIs(t, err, domain.ErrUnknownUnit)
}

func TestConverter_ConvertRecord_USToMetricWX(t *testing.T) {
	c := NewConverter()

	rec := domain.ArchiveRecord{
		Timestamp: 1700000000,
		Units:     domain.UnitsUS,
		Fields: map[string]float64{
			"outTemp":   68.0,  // F
			"windSpeed": 10.0,  // mph
			"barometer": 29.92, // inHg
			"rainRate":  0.5,   // in/hr
			"windDir":   270.0,
		},
	}

	out, dropped := c.ConvertRecord(rec, domain.UnitsMetricWX)
	require.Empty(t, dropped)
	require.Equal(t, domain.UnitsMetricWX, out.Units)
	require.Equal(t, rec.Timestamp, out.Timestamp)

	require.InDelta(t, 20.0, out.Fields["outTemp"], 0.01)
	require.InDelta(t, 4.47, out.Fields["windSpeed"], 0.01)
	require.InDelta(t, 1013.21, out.Fields["barometer"], 0.01)
	require.InDelta(t, 12.7, out.Fields["rainRate"], 0.01)
	require.InDelta(t, 270.0, out.Fields["windDir"], 0.01)
}

func TestConverter_ConvertRecord_NoopWhenAlreadyTarget(t *testing.T) {
	c := NewConverter()

	rec := domain.ArchiveRecord{
		Timestamp: 1700000000,
		Units:     domain.UnitsMetricWX,
		Fields:    map[string]float64{"windSpeed": 5.0},
	}

	out, dropped := c.ConvertRecord(rec, domain.UnitsMetricWX)
	require.Empty(t, dropped)
	require.InDelta(t, 5.0, out.Fields["windSpeed"], 0.001)
}

func TestConverter_ConvertRecord_UnknownFieldPassesThrough(t *testing.T) {
	c := NewConverter()

	rec := domain.ArchiveRecord{
		Timestamp: 1700000000,
		Units:     domain.UnitsMetric,
		Fields:    map[string]float64{"soilMoisture": 17.5},
	}

	out, dropped := c.ConvertRecord(rec, domain.UnitsMetricWX)
	require.Empty(t, dropped)
	require.Equal(t, 17.5, out.Fields["soilMoisture"])
}

func TestConverter_ConvertRecord_UnknownSystemDropsFields(t *testing.T) {
	c := NewConverter()

	rec := domain.ArchiveRecord{
		Timestamp: 1700000000,
		Units:     "cubits",
		Fields:    map[string]float64{"windSpeed": 5.0, "outTemp": 20.0},
	}

	out, dropped := c.ConvertRecord(rec, domain.UnitsMetricWX)
	require.ElementsMatch(t, []string{"windSpeed", "outTemp"}, dropped)
	require.Empty(t, out.Fields)
}
