// Package service contains the reconciliation core: resolving submitted
// location names, deciding duplicate disposition, and batch-processing
// contributions into timing records.
package service

import (
	"fmt"

	"github.com/perundhu/perundhu/internal/database/repository"
)

// ContributionKind tags the two contribution shapes.
type ContributionKind string

const (
	KindRoute ContributionKind = "route"
	KindImage ContributionKind = "image"
)

// TimingLine is one board section of an extracted destination block.
type TimingLine struct {
	Type  repository.TimingType `json:"type"`
	Times []string              `json:"times"`
}

// ExtractedDestination is one destination block from an OCR extraction:
// the destination name plus the time strings printed under each section.
type ExtractedDestination struct {
	Destination string       `json:"destination"`
	Lines       []TimingLine `json:"lines"`
}

// Contribution is a user- or OCR-submitted candidate awaiting validation.
// Kind selects which fields are meaningful: a route contribution carries a
// single from/to/departure triple, an image contribution carries the origin
// printed on the board plus the extracted destination blocks.
type Contribution struct {
	ID          string           `json:"id"`
	Kind        ContributionKind `json:"kind"`
	SubmittedBy *string          `json:"submitted_by,omitempty"`

	// route contribution
	FromName  string `json:"from,omitempty"`
	ToName    string `json:"to,omitempty"`
	Departure string `json:"departure,omitempty"`

	// image contribution
	OriginName string                 `json:"origin,omitempty"`
	Extracted  []ExtractedDestination `json:"extracted,omitempty"`
}

// Summary renders a short human-readable description of the contribution,
// dispatching on Kind.
func (c Contribution) Summary() string {
	switch c.Kind {
	case KindRoute:
		return fmt.Sprintf("route contribution %s: %s -> %s at %s", c.ID, c.FromName, c.ToName, c.Departure)
	case KindImage:
		return fmt.Sprintf("image contribution %s: board at %s, %d destination(s)", c.ID, c.OriginName, len(c.Extracted))
	default:
		return fmt.Sprintf("contribution %s (unknown kind %q)", c.ID, c.Kind)
	}
}

// submissions flattens a contribution into the individual timing submissions
// the reconciler evaluates, in a deterministic order.
func (c Contribution) submissions() []Submission {
	switch c.Kind {
	case KindRoute:
		return []Submission{{
			ContributionID: c.ID,
			FromName:       c.FromName,
			ToName:         c.ToName,
			Departure:      c.Departure,
			Source:         repository.SourceUserContribution,
		}}
	case KindImage:
		var subs []Submission
		for _, dest := range c.Extracted {
			for _, line := range dest.Lines {
				for _, t := range line.Times {
					subs = append(subs, Submission{
						ContributionID: c.ID,
						FromName:       c.OriginName,
						ToName:         dest.Destination,
						Departure:      t,
						TimingType:     line.Type,
						Source:         repository.SourceOCRExtracted,
					})
				}
			}
		}
		return subs
	default:
		return nil
	}
}
