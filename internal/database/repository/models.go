package repository

import "time"

// TimingType buckets a departure into the board section it was printed in.
type TimingType string

const (
	TimingMorning   TimingType = "MORNING"
	TimingAfternoon TimingType = "AFTERNOON"
	TimingNight     TimingType = "NIGHT"
)

// TimingTypeForMinute classifies a minute-of-day when a contribution does not
// say which board section it came from.
func TimingTypeForMinute(minute int) TimingType {
	switch h := minute / 60; {
	case h >= 4 && h < 12:
		return TimingMorning
	case h >= 12 && h < 19:
		return TimingAfternoon
	default:
		return TimingNight
	}
}

// TimingSource identifies where a timing record came from.
type TimingSource string

const (
	SourceOfficial         TimingSource = "OFFICIAL"
	SourceUserContribution TimingSource = "USER_CONTRIBUTION"
	SourceOCRExtracted     TimingSource = "OCR_EXTRACTED"
)

// Priority orders sources for duplicate tie-breaking: OFFICIAL outranks
// USER_CONTRIBUTION outranks OCR_EXTRACTED.
func (s TimingSource) Priority() int {
	switch s {
	case SourceOfficial:
		return 3
	case SourceUserContribution:
		return 2
	case SourceOCRExtracted:
		return 1
	default:
		return 0
	}
}

// SkipReason explains why a contribution was not turned into a record.
type SkipReason string

const (
	SkipDuplicateExact   SkipReason = "DUPLICATE_EXACT"
	SkipDuplicateSimilar SkipReason = "DUPLICATE_SIMILAR"
	SkipInvalidTime      SkipReason = "INVALID_TIME"
	SkipInvalidLocation  SkipReason = "INVALID_LOCATION"
)

// Location represents a canonical gazetteer entry.
type Location struct {
	ID        string
	Name      string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
}

// TimingRecord represents an accepted bus timing row. Records are never
// deleted; the only mutations are flipping verified and upgrading source
// when a higher-priority submission corroborates the same timing.
type TimingRecord struct {
	ID              string
	FromLocationID  string
	ToLocationID    string
	DepartureMinute int
	TimingType      TimingType
	Source          TimingSource
	Verified        bool
	ContributionID  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SkippedTiming is the immutable audit row written when a contribution is
// rejected as redundant or invalid.
type SkippedTiming struct {
	ID                   string
	ContributionID       *string
	FromLocationID       *string
	FromLocationName     *string
	ToLocationID         *string
	ToLocationName       *string
	DepartureMinute      *int
	TimingType           *TimingType
	SkipReason           SkipReason
	ExistingRecordID     *string
	ExistingRecordSource *TimingSource
	Notes                *string
	SkippedAt            time.Time
}
