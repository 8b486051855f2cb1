package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/perundhu/perundhu/internal/database/repository"
)

// IngestResult summarizes one contribution's processing.
type IngestResult struct {
	Created int
	Skipped int
	Invalid int
	Errors  []error
}

// IngestService turns contributions into reconciled timing records. One
// image contribution can carry dozens of timings for the same route;
// submissions are processed strictly in order so they never race each other
// into duplicate floods.
type IngestService struct {
	Reconciler *Reconciler
	Log        zerolog.Logger
}

// Process reconciles every timing in the contribution and returns counts per
// disposition. A storage failure on one submission is recorded and the rest
// continue.
func (s *IngestService) Process(ctx context.Context, c Contribution) (IngestResult, error) {
	subs := c.submissions()
	if len(subs) == 0 {
		return IngestResult{}, fmt.Errorf("contribution %s: no timings to process", c.ID)
	}
	s.Log.Info().Str("contribution", c.ID).Int("timings", len(subs)).Msg(c.Summary())

	res := IngestResult{}
	for _, sub := range subs {
		out, err := s.Reconciler.Process(ctx, sub)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s -> %s at %s: %w", sub.FromName, sub.ToName, sub.Departure, err))
			continue
		}
		switch {
		case out.Disposition == Created:
			res.Created++
		case out.Reason == repository.SkipInvalidTime || out.Reason == repository.SkipInvalidLocation:
			res.Invalid++
		default:
			res.Skipped++
		}
	}

	s.Log.Info().
		Str("contribution", c.ID).
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Int("invalid", res.Invalid).
		Int("errors", len(res.Errors)).
		Msg("contribution processed")
	return res, nil
}
