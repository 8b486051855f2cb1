package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/perundhu/perundhu/internal/database/repository"
)

func submission(from, to, departure string, src repository.TimingSource) Submission {
	return Submission{
		ContributionID: "contrib-1",
		FromName:       from,
		ToName:         to,
		Departure:      departure,
		TimingType:     repository.TimingMorning,
		Source:         src,
	}
}

func TestReconcilerDispositions(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := newTestDB(t)
	r := newTestReconciler(db)

	// First submission of a new timing is created, unverified.
	out, err := r.Process(ctx, submission("Chennai", "Coimbatore", "05:30", repository.SourceUserContribution))
	require.NoError(t, err)
	require.Equal(t, Created, out.Disposition)
	require.NotEmpty(t, out.RecordID)

	created, err := r.Timings.Get(ctx, out.RecordID)
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, 5*60+30, created.DepartureMinute)
	require.Equal(t, repository.SourceUserContribution, created.Source)
	require.False(t, created.Verified)

	// Same route, same minute: exact duplicate.
	dup, err := r.Process(ctx, submission("Chennai", "Coimbatore", "05:30", repository.SourceUserContribution))
	require.NoError(t, err)
	require.Equal(t, Skipped, dup.Disposition)
	require.Equal(t, repository.SkipDuplicateExact, dup.Reason)
	require.Equal(t, out.RecordID, dup.ExistingRecordID)
	require.Equal(t, repository.SourceUserContribution, dup.ExistingSource)

	// Within the 10 minute window: near duplicate.
	near, err := r.Process(ctx, submission("Chennai", "Coimbatore", "05:33", repository.SourceUserContribution))
	require.NoError(t, err)
	require.Equal(t, Skipped, near.Disposition)
	require.Equal(t, repository.SkipDuplicateSimilar, near.Reason)
	require.Equal(t, out.RecordID, near.ExistingRecordID)

	// Outside the window: genuinely new.
	fresh, err := r.Process(ctx, submission("Chennai", "Coimbatore", "06:45", repository.SourceUserContribution))
	require.NoError(t, err)
	require.Equal(t, Created, fresh.Disposition)

	// Every skip left an audit row.
	skips, err := r.Skips.ListByContribution(ctx, "contrib-1")
	require.NoError(t, err)
	require.Len(t, skips, 2)
	for _, s := range skips {
		require.NotNil(t, s.ExistingRecordID)
		require.NotNil(t, s.ExistingRecordSource)
	}
}

func TestReconcilerInvalidInputs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	r := newTestReconciler(db)

	out, err := r.Process(ctx, submission("XQZWV", "Coimbatore", "05:30", repository.SourceOCRExtracted))
	require.NoError(t, err)
	require.Equal(t, Skipped, out.Disposition)
	require.Equal(t, repository.SkipInvalidLocation, out.Reason)

	out, err = r.Process(ctx, submission("Chennai", "Coimbatore", "99:99", repository.SourceOCRExtracted))
	require.NoError(t, err)
	require.Equal(t, Skipped, out.Disposition)
	require.Equal(t, repository.SkipInvalidTime, out.Reason)

	skips, err := r.Skips.ListByContribution(ctx, "contrib-1")
	require.NoError(t, err)
	require.Len(t, skips, 2)
	reasons := map[repository.SkipReason]bool{}
	for _, s := range skips {
		reasons[s.SkipReason] = true
	}
	require.True(t, reasons[repository.SkipInvalidLocation])
	require.True(t, reasons[repository.SkipInvalidTime])
}

func TestReconcilerFuzzyLocationFallback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	r := newTestReconciler(db)

	// "MADURAJ" is a known OCR misread, "COIMBATORE" misspelled by one edit.
	out, err := r.Process(ctx, submission("MADURAJ", "COIMBTORE", "07:00", repository.SourceOCRExtracted))
	require.NoError(t, err)
	require.Equal(t, Created, out.Disposition)

	rec, err := r.Timings.Get(ctx, out.RecordID)
	require.NoError(t, err)
	require.NotNil(t, rec)

	from, err := r.Resolver.Locations.Get(ctx, rec.FromLocationID)
	require.NoError(t, err)
	require.Equal(t, "MADURAI", from.Name)
	to, err := r.Resolver.Locations.Get(ctx, rec.ToLocationID)
	require.NoError(t, err)
	require.Equal(t, "COIMBATORE", to.Name)
}

func TestReconcilerCorroboration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	r := newTestReconciler(db)

	out, err := r.Process(ctx, submission("Chennai", "Madurai", "08:15", repository.SourceOCRExtracted))
	require.NoError(t, err)
	require.Equal(t, Created, out.Disposition)

	// An exact duplicate from an independent, higher-priority source verifies
	// the record and upgrades its attribution.
	dup, err := r.Process(ctx, submission("Chennai", "Madurai", "08:15", repository.SourceUserContribution))
	require.NoError(t, err)
	require.Equal(t, repository.SkipDuplicateExact, dup.Reason)
	require.Equal(t, repository.SourceOCRExtracted, dup.ExistingSource, "skip cites the source seen at decision time")

	rec, err := r.Timings.Get(ctx, out.RecordID)
	require.NoError(t, err)
	require.True(t, rec.Verified)
	require.Equal(t, repository.SourceUserContribution, rec.Source)

	// A repeat from the same source neither verifies nor upgrades further.
	rec2Before, err := r.Timings.Get(ctx, out.RecordID)
	require.NoError(t, err)
	_, err = r.Process(ctx, submission("Chennai", "Madurai", "08:15", repository.SourceUserContribution))
	require.NoError(t, err)
	rec2After, err := r.Timings.Get(ctx, out.RecordID)
	require.NoError(t, err)
	require.Equal(t, rec2Before.Source, rec2After.Source)
}

func TestReconcilerCitesHighestPrioritySource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	r := newTestReconciler(db)
	r.OfficialPreVerified = true

	ocr, err := r.Process(ctx, submission("Salem", "Erode", "09:25", repository.SourceOCRExtracted))
	require.NoError(t, err)
	require.Equal(t, Created, ocr.Disposition)

	official, err := r.Process(ctx, submission("Salem", "Erode", "09:35", repository.SourceOfficial))
	require.NoError(t, err)
	require.Equal(t, Created, official.Disposition)
	officialRec, err := r.Timings.Get(ctx, official.RecordID)
	require.NoError(t, err)
	require.True(t, officialRec.Verified, "OFFICIAL contributions are created pre-verified")

	// 09:30 is within 10 minutes of both; the OFFICIAL record is cited.
	out, err := r.Process(ctx, submission("Salem", "Erode", "09:30", repository.SourceUserContribution))
	require.NoError(t, err)
	require.Equal(t, repository.SkipDuplicateSimilar, out.Reason)
	require.Equal(t, official.RecordID, out.ExistingRecordID)
	require.Equal(t, repository.SourceOfficial, out.ExistingSource)
}

func TestConcurrentSubmissionsCreateOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	r := newTestReconciler(db)

	const n = 8
	outcomes := make([]Outcome, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = r.Process(ctx, submission("Chennai", "Trichy", "10:05", repository.SourceUserContribution))
		}(i)
	}
	wg.Wait()

	created, skipped := 0, 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		switch outcomes[i].Disposition {
		case Created:
			created++
		case Skipped:
			require.Equal(t, repository.SkipDuplicateExact, outcomes[i].Reason)
			skipped++
		}
	}
	require.Equal(t, 1, created, "unique index admits exactly one record")
	require.Equal(t, n-1, skipped)
}
