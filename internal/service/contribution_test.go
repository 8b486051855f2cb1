package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perundhu/perundhu/internal/database/repository"
)

func TestContributionSummaryDispatch(t *testing.T) {
	t.Parallel()

	route := Contribution{ID: "r1", Kind: KindRoute, FromName: "Chennai", ToName: "Salem", Departure: "07:00"}
	require.Contains(t, route.Summary(), "route contribution r1")
	require.Contains(t, route.Summary(), "Chennai -> Salem")

	image := Contribution{ID: "i1", Kind: KindImage, OriginName: "Madurai",
		Extracted: []ExtractedDestination{{Destination: "Chennai"}, {Destination: "Salem"}}}
	require.Contains(t, image.Summary(), "image contribution i1")
	require.Contains(t, image.Summary(), "2 destination(s)")

	unknown := Contribution{ID: "u1", Kind: "paste"}
	require.Contains(t, unknown.Summary(), "unknown kind")
}

func TestContributionSubmissions(t *testing.T) {
	t.Parallel()

	route := Contribution{ID: "r1", Kind: KindRoute, FromName: "Chennai", ToName: "Salem", Departure: "07:00"}
	subs := route.submissions()
	require.Len(t, subs, 1)
	require.Equal(t, repository.SourceUserContribution, subs[0].Source)
	require.Empty(t, subs[0].TimingType, "route contributions infer the section from the time")

	image := Contribution{
		ID: "i1", Kind: KindImage, OriginName: "Madurai",
		Extracted: []ExtractedDestination{
			{Destination: "Chennai", Lines: []TimingLine{
				{Type: repository.TimingMorning, Times: []string{"06:00", "07:30"}},
				{Type: repository.TimingNight, Times: []string{"22:00"}},
			}},
			{Destination: "Salem", Lines: []TimingLine{
				{Type: repository.TimingAfternoon, Times: []string{"14:00"}},
			}},
		},
	}
	subs = image.submissions()
	require.Len(t, subs, 4)
	for _, s := range subs {
		require.Equal(t, "Madurai", s.FromName)
		require.Equal(t, repository.SourceOCRExtracted, s.Source)
		require.Equal(t, "i1", s.ContributionID)
	}
	// deterministic flattening order: destinations, then lines, then times
	require.Equal(t, "06:00", subs[0].Departure)
	require.Equal(t, "07:30", subs[1].Departure)
	require.Equal(t, "22:00", subs[2].Departure)
	require.Equal(t, "Salem", subs[3].ToName)

	require.Empty(t, Contribution{Kind: "other"}.submissions())
}
