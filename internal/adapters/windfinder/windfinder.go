// Package windfinder implements the WindFinder destination: the field table,
// the payload builder and the response checker, composed into the generic
// delivery worker.
//
// The upload protocol is a single GET per record:
//
//	httpload.pl?sender_id=ID&password=PW&date=19.5.2011&time=17:13&windspeed=12&...
//
// Stations must be registered at windfinder.com before uploading.
package windfinder

import (
	"fmt"
	"net/url"
	"time"

	"github.com/wx-labs/wxship/internal/adapters/units"
	"github.com/wx-labs/wxship/internal/domain"
	"github.com/wx-labs/wxship/internal/ports"
)

// DefaultServerURL is the well-known WindFinder upload endpoint.
const DefaultServerURL = "http://www.windfinder.com/wind-cgi/httpload.pl"

// DataMap is WindFinder's static field table. Wire keys and formats follow
// the destination's httpload API; values are expected in metricwx units with
// speeds in knots.
var DataMap = []domain.FieldMapping{
	{WireKey: "airtemp", SourceField: "outTemp", Format: "%.1f"},     // C
	{WireKey: "winddir", SourceField: "windDir", Format: "%.0f"},     // degree
	{WireKey: "windspeed", SourceField: "windSpeed", Format: "%.1f"}, // knots
	{WireKey: "gust", SourceField: "windGust", Format: "%.1f"},       // knots
	{WireKey: "pressure", SourceField: "barometer", Format: "%.3f"},  // hPa
	{WireKey: "rain", SourceField: "rainRate", Format: "%.2f"},       // mm/hr
}

// Precheck requires a non-null windSpeed: a wind report without wind speed
// is meaningless to WindFinder, so the job is aborted before any network
// attempt and without counting a failure.
func Precheck(rec domain.ArchiveRecord) error {
	if _, ok := rec.Get("windSpeed"); !ok {
		return &domain.AbortError{Reason: "no windSpeed in record"}
	}
	return nil
}

// unitConverter is the conversion context the builder needs: single-value
// conversion plus whole-record unit system conversion.
type unitConverter interface {
	ports.UnitConverter
	ConvertRecord(rec domain.ArchiveRecord, target string) (domain.ArchiveRecord, []string)
}

// PayloadBuilder builds WindFinder upload URLs from archive records.
type PayloadBuilder struct {
	stationID string
	password  string
	serverURL string
	loc       *time.Location
	conv      unitConverter
	logger    ports.Logger
}

// NewPayloadBuilder creates a builder for the given station.
// serverURL defaults to DefaultServerURL when empty; loc defaults to the
// process's local timezone.
func NewPayloadBuilder(stationID, password, serverURL string, loc *time.Location, conv unitConverter, logger ports.Logger) *PayloadBuilder {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	if loc == nil {
		loc = time.Local
	}
	return &PayloadBuilder{
		stationID: stationID,
		password:  password,
		serverURL: serverURL,
		loc:       loc,
		conv:      conv,
		logger:    logger,
	}
}

// Build converts the record to metricwx units, applies the knots conversion
// WindFinder expects for speeds, and assembles the URL-encoded GET URL.
//
// Absent fields are omitted, never sent as empty or zero. A field whose
// conversion fails is likewise omitted and logged; partial telemetry is
// preferable to none, so Build does not fail for it.
func (b *PayloadBuilder) Build(rec domain.ArchiveRecord) (string, error) {
	metric, dropped := b.conv.ConvertRecord(rec, domain.UnitsMetricWX)

	for _, field := range []string{"windSpeed", "windGust"} {
		v, ok := metric.Fields[field]
		if !ok {
			continue
		}
		kn, err := b.conv.Convert(v, units.MeterPerSecond, units.Knot)
		if err != nil {
			delete(metric.Fields, field)
			dropped = append(dropped, field)
			continue
		}
		metric.Fields[field] = kn
	}

	if len(dropped) > 0 {
		b.logger.Debug("fields omitted from payload",
			ports.Any("fields", dropped),
		)
	}

	values := url.Values{}
	values.Set("sender_id", b.stationID)
	values.Set("password", b.password)
	t := time.Unix(rec.Timestamp, 0).In(b.loc)
	values.Set("date", t.Format("02.01.2006"))
	values.Set("time", t.Format("15:04"))

	for _, m := range DataMap {
		if v, ok := metric.Fields[m.SourceField]; ok {
			values.Set(m.WireKey, fmt.Sprintf(m.Format, v))
		}
	}

	return b.serverURL + "?" + values.Encode(), nil
}
