// Package units converts scalar observation values between named physical
// units and whole archive records between unit systems.
//
// The unit vocabulary follows the host data store's convention: a record is
// tagged with the system its values are expressed in (us, metric, metricwx)
// and every observation field belongs to a unit group (temperature, speed,
// pressure, ...) that determines its concrete unit under each system.
package units

import (
	"fmt"

	"github.com/wx-labs/wxship/internal/domain"
)

// Unit names.
const (
	DegreeF        = "degree_F"
	DegreeC        = "degree_C"
	MilePerHour    = "mile_per_hour"
	KmPerHour      = "km_per_hour"
	MeterPerSecond = "meter_per_second"
	Knot           = "knot"
	InHg           = "inHg"
	HPa            = "hPa"
	Mbar           = "mbar"
	InchPerHour    = "inch_per_hour"
	MmPerHour      = "mm_per_hour"
	Inch           = "inch"
	Mm             = "mm"
	DegreeCompass  = "degree_compass"
)

// Unit groups.
const (
	groupTemperature = "temperature"
	groupSpeed       = "speed"
	groupPressure    = "pressure"
	groupRainRate    = "rainrate"
	groupRain        = "rain"
	groupDirection   = "direction"
)

// unitDef converts a unit to and from its group's base unit
// (°C, m/s, hPa, mm/hr, mm, compass degrees).
type unitDef struct {
	group    string
	toBase   func(float64) float64
	fromBase func(float64) float64
}

func identity(v float64) float64 { return v }

func scale(factor float64) (func(float64) float64, func(float64) float64) {
	return func(v float64) float64 { return v * factor },
		func(v float64) float64 { return v / factor }
}

var unitTable = map[string]unitDef{}

func register(name, group string, toBase, fromBase func(float64) float64) {
	unitTable[name] = unitDef{group: group, toBase: toBase, fromBase: fromBase}
}

func init() {
	register(DegreeC, groupTemperature, identity, identity)
	register(DegreeF, groupTemperature,
		func(v float64) float64 { return (v - 32) * 5 / 9 },
		func(v float64) float64 { return v*9/5 + 32 })

	register(MeterPerSecond, groupSpeed, identity, identity)
	toB, fromB := scale(0.44704)
	register(MilePerHour, groupSpeed, toB, fromB)
	toB, fromB = scale(1.0 / 3.6)
	register(KmPerHour, groupSpeed, toB, fromB)
	toB, fromB = scale(0.514444)
	register(Knot, groupSpeed, toB, fromB)

	register(HPa, groupPressure, identity, identity)
	register(Mbar, groupPressure, identity, identity)
	toB, fromB = scale(33.8639)
	register(InHg, groupPressure, toB, fromB)

	register(MmPerHour, groupRainRate, identity, identity)
	toB, fromB = scale(25.4)
	register(InchPerHour, groupRainRate, toB, fromB)

	register(Mm, groupRain, identity, identity)
	toB, fromB = scale(25.4)
	register(Inch, groupRain, toB, fromB)

	register(DegreeCompass, groupDirection, identity, identity)
}

// fieldGroups assigns each known observation field to its unit group.
var fieldGroups = map[string]string{
	"outTemp":   groupTemperature,
	"inTemp":    groupTemperature,
	"dewpoint":  groupTemperature,
	"windSpeed": groupSpeed,
	"windGust":  groupSpeed,
	"barometer": groupPressure,
	"pressure":  groupPressure,
	"rainRate":  groupRainRate,
	"rain":      groupRain,
	"windDir":   groupDirection,
	"gustDir":   groupDirection,
}

// systemUnits names the concrete unit of each group under each unit system.
var systemUnits = map[string]map[string]string{
	domain.UnitsUS: {
		groupTemperature: DegreeF,
		groupSpeed:       MilePerHour,
		groupPressure:    InHg,
		groupRainRate:    InchPerHour,
		groupRain:        Inch,
		groupDirection:   DegreeCompass,
	},
	domain.UnitsMetric: {
		groupTemperature: DegreeC,
		groupSpeed:       KmPerHour,
		groupPressure:    HPa,
		groupRainRate:    MmPerHour,
		groupRain:        Mm,
		groupDirection:   DegreeCompass,
	},
	domain.UnitsMetricWX: {
		groupTemperature: DegreeC,
		groupSpeed:       MeterPerSecond,
		groupPressure:    HPa,
		groupRainRate:    MmPerHour,
		groupRain:        Mm,
		groupDirection:   DegreeCompass,
	},
}

// Converter implements ports.UnitConverter over the static unit table.
type Converter struct{}

// NewConverter creates a converter.
func NewConverter() *Converter { return &Converter{} }

// Convert converts value between two named units in the same group.
// Either unit being unrecognized, or the units belonging to different
// groups, fails with domain.ErrUnknownUnit.
func (Converter) Convert(value float64, from, to string) (float64, error) {
	if from == to {
		return value, nil
	}
	f, ok := unitTable[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, from)
	}
	t, ok := unitTable[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, to)
	}
	if f.group != t.group {
		return 0, fmt.Errorf("%w: no conversion from %q to %q", domain.ErrUnknownUnit, from, to)
	}
	return t.fromBase(f.toBase(value)), nil
}

// ConvertRecord converts every known field of the record into the target
// unit system. Fields with no registered unit group pass through unchanged;
// fields whose source unit cannot be determined (unrecognized record unit
// system) are dropped and their names returned, so the caller can log the
// omission and still send a partial payload.
func (c Converter) ConvertRecord(rec domain.ArchiveRecord, target string) (domain.ArchiveRecord, []string) {
	out := domain.ArchiveRecord{
		Timestamp: rec.Timestamp,
		Units:     target,
		Fields:    make(map[string]float64, len(rec.Fields)),
	}

	var dropped []string
	for name, value := range rec.Fields {
		group, ok := fieldGroups[name]
		if !ok {
			out.Fields[name] = value
			continue
		}
		from, ok := systemUnits[rec.Units][group]
		if !ok {
			dropped = append(dropped, name)
			continue
		}
		to := systemUnits[target][group]
		converted, err := c.Convert(value, from, to)
		if err != nil {
			dropped = append(dropped, name)
			continue
		}
		out.Fields[name] = converted
	}
	return out, dropped
}
