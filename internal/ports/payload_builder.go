package ports

import "github.com/wx-labs/wxship/internal/domain"

// PayloadBuilder transforms an archive record into the destination's wire
// representation: a fully URL-encoded request URL carrying credentials, the
// local date/time and every mapped, non-null observation.
//
// Builders are pure: the same record always yields the same URL. A field
// whose unit conversion fails is omitted rather than failing the whole
// payload; partial telemetry is preferable to none. Build fails only when no
// payload can be produced at all.
type PayloadBuilder interface {
	Build(record domain.ArchiveRecord) (string, error)
}

// RecordPrecheck is the destination's required-field predicate, applied
// before any network attempt. A non-nil *domain.AbortError aborts the job
// without counting a network failure.
type RecordPrecheck func(record domain.ArchiveRecord) error
