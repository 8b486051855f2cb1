package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/perundhu/perundhu/internal/database/repository"
	"github.com/perundhu/perundhu/internal/ocr"
)

// timePattern matches the time tokens printed on timing boards, with or
// without an AM/PM suffix.
var timePattern = regexp.MustCompile(`(?i)\b\d{1,2}[:.]\d{2}\s*(?:AM|PM)?`)

// sectionHeaders maps board section labels, in Latin and Tamil script, to the
// timing type they introduce.
var sectionHeaders = map[string]repository.TimingType{
	"MORNING":   repository.TimingMorning,
	"AFTERNOON": repository.TimingAfternoon,
	"EVENING":   repository.TimingAfternoon,
	"NIGHT":     repository.TimingNight,
	"காலை":      repository.TimingMorning,
	"மதியம்":    repository.TimingAfternoon,
	"மாலை":      repository.TimingAfternoon,
	"இரவு":      repository.TimingNight,
}

// BoardReader turns a photographed timing board into an image contribution by
// running the configured text extractor and parsing its line output.
type BoardReader struct {
	Extractor ocr.Extractor
	Log       zerolog.Logger
}

// Read extracts text from the image and parses it into a contribution rooted
// at the given origin. The returned contribution carries one destination block
// per board column, ready for ingest.
func (b *BoardReader) Read(ctx context.Context, origin string, image []byte) (Contribution, error) {
	ex, err := b.Extractor.Extract(ctx, image)
	if err != nil {
		return Contribution{}, fmt.Errorf("extracting board text: %w", err)
	}

	lines := ex.Lines
	if len(lines) == 0 {
		lines = strings.Split(ex.Text, "\n")
	}
	blocks := ParseBoardLines(lines)

	b.Log.Debug().
		Str("origin", origin).
		Float64("confidence", ex.Confidence).
		Int("destinations", len(blocks)).
		Msg("parsed timing board")

	return Contribution{
		ID:         uuid.NewString(),
		Kind:       KindImage,
		OriginName: origin,
		Extracted:  blocks,
	}, nil
}

// ParseBoardLines groups extracted text lines into destination blocks. A line
// with no time tokens starts a new destination unless it is a section header;
// headers set the timing type for the time lines that follow. Time lines seen
// before any destination are dropped.
func ParseBoardLines(lines []string) []ExtractedDestination {
	var (
		blocks  []ExtractedDestination
		section repository.TimingType
	)
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if t, ok := sectionHeaders[strings.ToUpper(line)]; ok {
			section = t
			continue
		}
		times := timePattern.FindAllString(line, -1)
		if len(times) == 0 {
			blocks = append(blocks, ExtractedDestination{Destination: line})
			section = ""
			continue
		}
		if len(blocks) == 0 {
			continue
		}
		for i := range times {
			times[i] = strings.TrimSpace(times[i])
		}
		cur := &blocks[len(blocks)-1]
		if n := len(cur.Lines); n > 0 && cur.Lines[n-1].Type == section {
			cur.Lines[n-1].Times = append(cur.Lines[n-1].Times, times...)
			continue
		}
		cur.Lines = append(cur.Lines, TimingLine{Type: section, Times: times})
	}
	return blocks
}
