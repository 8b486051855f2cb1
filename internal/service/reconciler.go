package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/perundhu/perundhu/internal/database"
	"github.com/perundhu/perundhu/internal/database/repository"
)

// Submission is one candidate timing awaiting a disposition decision.
type Submission struct {
	ContributionID string
	FromName       string
	ToName         string
	Departure      string
	// TimingType is optional; when empty it is inferred from the parsed
	// departure time.
	TimingType repository.TimingType
	Source     repository.TimingSource
}

// Disposition is the terminal state of one submission.
type Disposition string

const (
	Created Disposition = "CREATED"
	Skipped Disposition = "SKIPPED"
)

// Outcome reports what the reconciler decided for a submission. Reason,
// ExistingRecordID and ExistingSource are set only for skips; RecordID is
// the created record for Created outcomes.
type Outcome struct {
	Disposition      Disposition
	Reason           repository.SkipReason
	RecordID         string
	ExistingRecordID string
	ExistingSource   repository.TimingSource
	Notes            string
}

// Reconciler decides whether a submitted timing duplicates the accepted
// corpus or is genuinely new. Each submission reaches a terminal state in a
// single pass; every skip is persisted as an audit row.
//
// The duplicate check reads then writes, so two concurrent submissions of the
// same timing can both pass it. The unique index on
// (from, to, timing_type, departure_minute) closes that gap: the second
// insert fails and is converted to a DUPLICATE_EXACT skip.
type Reconciler struct {
	Timings  *repository.TimingRecordRepo
	Skips    *repository.SkippedTimingRepo
	Resolver *Resolver
	Log      zerolog.Logger

	// WindowMinutes is the near-duplicate tolerance around an existing
	// departure.
	WindowMinutes int
	// OfficialPreVerified creates OFFICIAL-sourced records already verified.
	OfficialPreVerified bool
}

// Process evaluates one submission and returns its terminal outcome. The
// returned error covers storage failures only; invalid or duplicate
// submissions are normal outcomes.
func (r *Reconciler) Process(ctx context.Context, sub Submission) (Outcome, error) {
	from, err := r.Resolver.Resolve(ctx, sub.FromName)
	if err != nil {
		return Outcome{}, err
	}
	if from == nil {
		return r.skipInvalidLocation(ctx, sub, sub.FromName)
	}
	to, err := r.Resolver.Resolve(ctx, sub.ToName)
	if err != nil {
		return Outcome{}, err
	}
	if to == nil {
		return r.skipInvalidLocation(ctx, sub, sub.ToName)
	}

	minute, perr := ParseDeparture(sub.Departure)
	if perr != nil {
		return r.skip(ctx, sub, repository.SkippedTiming{
			FromLocationID: &from.Location.ID,
			ToLocationID:   &to.Location.ID,
			SkipReason:     repository.SkipInvalidTime,
			Notes:          notes(fmt.Sprintf("unparseable departure time: %v", perr)),
		})
	}

	tt := sub.TimingType
	if tt == "" {
		tt = repository.TimingTypeForMinute(minute)
	}

	// Exact duplicate: same route, same section, same minute.
	exact, err := r.Timings.FindInWindow(ctx, from.Location.ID, to.Location.ID, tt, minute, 0)
	if err != nil {
		return Outcome{}, err
	}
	if len(exact) > 0 {
		existing := bestBySource(exact)
		if err := r.corroborate(ctx, existing, sub.Source); err != nil {
			return Outcome{}, err
		}
		return r.skipDuplicate(ctx, sub, from, to, minute, tt, existing, repository.SkipDuplicateExact)
	}

	// Near duplicate: same route and section within the tolerance window.
	if r.WindowMinutes > 0 {
		near, err := r.Timings.FindInWindow(ctx, from.Location.ID, to.Location.ID, tt, minute, r.WindowMinutes)
		if err != nil {
			return Outcome{}, err
		}
		if len(near) > 0 {
			existing := bestBySource(near)
			return r.skipDuplicate(ctx, sub, from, to, minute, tt, existing, repository.SkipDuplicateSimilar)
		}
	}

	rec := repository.TimingRecord{
		ID:              uuid.NewString(),
		FromLocationID:  from.Location.ID,
		ToLocationID:    to.Location.ID,
		DepartureMinute: minute,
		TimingType:      tt,
		Source:          sub.Source,
		Verified:        sub.Source == repository.SourceOfficial && r.OfficialPreVerified,
		ContributionID:  nullableStr(sub.ContributionID),
	}
	if err := r.Timings.Insert(ctx, rec); err != nil {
		if !database.IsUniqueViolation(err) {
			return Outcome{}, err
		}
		// Lost the race to an identical insert; cite the winner.
		winners, ferr := r.Timings.FindInWindow(ctx, from.Location.ID, to.Location.ID, tt, minute, 0)
		if ferr != nil {
			return Outcome{}, ferr
		}
		if len(winners) == 0 {
			return Outcome{}, err
		}
		return r.skipDuplicate(ctx, sub, from, to, minute, tt, winners[0], repository.SkipDuplicateExact)
	}

	r.Log.Debug().
		Str("from", from.Location.Name).
		Str("to", to.Location.Name).
		Str("time", FormatMinute(minute)).
		Str("source", string(sub.Source)).
		Msg("timing record created")
	return Outcome{Disposition: Created, RecordID: rec.ID}, nil
}

// corroborate applies the allowed mutations when an exact duplicate arrives:
// an independent source verifies the record, a higher-priority source takes
// over its attribution.
func (r *Reconciler) corroborate(ctx context.Context, existing repository.TimingRecord, src repository.TimingSource) error {
	if !existing.Verified && src != existing.Source {
		if err := r.Timings.MarkVerified(ctx, existing.ID); err != nil {
			return err
		}
	}
	if src.Priority() > existing.Source.Priority() {
		if err := r.Timings.UpdateSource(ctx, existing.ID, src); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) skipDuplicate(ctx context.Context, sub Submission, from, to *Resolution, minute int, tt repository.TimingType, existing repository.TimingRecord, reason repository.SkipReason) (Outcome, error) {
	note := fmt.Sprintf("existing record departs %s", FormatMinute(existing.DepartureMinute))
	return r.skip(ctx, sub, repository.SkippedTiming{
		FromLocationID:       &from.Location.ID,
		ToLocationID:         &to.Location.ID,
		DepartureMinute:      &minute,
		TimingType:           &tt,
		SkipReason:           reason,
		ExistingRecordID:     &existing.ID,
		ExistingRecordSource: &existing.Source,
		Notes:                &note,
	})
}

func (r *Reconciler) skipInvalidLocation(ctx context.Context, sub Submission, name string) (Outcome, error) {
	return r.skip(ctx, sub, repository.SkippedTiming{
		SkipReason: repository.SkipInvalidLocation,
		Notes:      notes(fmt.Sprintf("could not resolve location %q", name)),
	})
}

func (r *Reconciler) skip(ctx context.Context, sub Submission, s repository.SkippedTiming) (Outcome, error) {
	s.ID = uuid.NewString()
	s.ContributionID = nullableStr(sub.ContributionID)
	s.FromLocationName = nullableStr(sub.FromName)
	s.ToLocationName = nullableStr(sub.ToName)
	if err := r.Skips.Add(ctx, s); err != nil {
		return Outcome{}, err
	}
	out := Outcome{Disposition: Skipped, Reason: s.SkipReason}
	if s.ExistingRecordID != nil {
		out.ExistingRecordID = *s.ExistingRecordID
	}
	if s.ExistingRecordSource != nil {
		out.ExistingSource = *s.ExistingRecordSource
	}
	if s.Notes != nil {
		out.Notes = *s.Notes
	}
	r.Log.Debug().
		Str("from", sub.FromName).
		Str("to", sub.ToName).
		Str("reason", string(s.SkipReason)).
		Msg("submission skipped")
	return out, nil
}

// bestBySource picks the record with the highest-priority source; ties keep
// the earliest departure (input order from the repository).
func bestBySource(records []repository.TimingRecord) repository.TimingRecord {
	best := records[0]
	for _, rec := range records[1:] {
		if rec.Source.Priority() > best.Source.Priority() {
			best = rec
		}
	}
	return best
}

func notes(s string) *string { return &s }

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
