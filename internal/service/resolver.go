package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/perundhu/perundhu/internal/database/repository"
	"github.com/perundhu/perundhu/internal/matcher"
)

// ResolveMethod records how a raw name was matched to a location.
type ResolveMethod string

const (
	ResolvedPattern   ResolveMethod = "tamil_pattern"
	ResolvedCorrected ResolveMethod = "ocr_corrected"
	ResolvedExact     ResolveMethod = "exact"
	ResolvedFuzzy     ResolveMethod = "fuzzy"
)

// Resolution is the outcome of resolving one raw location name.
type Resolution struct {
	Location   repository.Location
	Method     ResolveMethod
	Similarity float64
}

// tamilPatterns maps canonical city names to Tamil-script substrings seen on
// timing boards. Checked before any Latin normalization, which would strip
// Tamil text entirely.
var tamilPatterns = map[string][]string{
	"RAMESHWARAM": {"இராமேஸ்வரம்", "ராமேஸ்வரம்", "ராமே", "இராமே"},
	"CHENNAI":     {"சென்னை", "செண்ணை"},
	"MADURAI":     {"மதுரை", "மதுரா"},
	"COIMBATORE":  {"கோயம்புத்தூர்", "கோவை"},
	"TRICHY":      {"திருச்சி", "திருச்சிராப்பள்ளி"},
	"SALEM":       {"சேலம்"},
	"TIRUNELVELI": {"திருநெல்வேலி", "நெல்லை"},
	"KANYAKUMARI": {"கன்னியாகுமரி", "குமரி"},
	"THANJAVUR":   {"தஞ்சாவூர்", "தஞ்சை"},
	"THOOTHUKUDI": {"தூத்துக்குடி"},
	"BENGALURU":   {"பெங்களூரு", "பெங்களூர்"},
}

// Resolver maps free-text location names, typically OCR output, to canonical
// gazetteer entries. Lookups cascade: Tamil script patterns, the OCR
// correction table, exact name lookup, then fuzzy matching over all known
// names. Results (including misses) are cached.
type Resolver struct {
	Locations   *repository.LocationRepo
	Matcher     *matcher.Matcher
	MaxDistance int
	Log         zerolog.Logger

	mu    sync.Mutex
	cache map[string]*Resolution
}

// Resolve returns the canonical location for rawText, or (nil, nil) when the
// name cannot be resolved. A nil resolution is an expected outcome, not an
// error.
func (r *Resolver) Resolve(ctx context.Context, rawText string) (*Resolution, error) {
	key := strings.ToUpper(strings.TrimSpace(rawText))
	if key == "" {
		return nil, nil
	}

	r.mu.Lock()
	if r.cache == nil {
		r.cache = make(map[string]*Resolution)
	}
	if res, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return res, nil
	}
	r.mu.Unlock()

	res, err := r.resolve(ctx, rawText, key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = res
	r.mu.Unlock()
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, rawText, key string) (*Resolution, error) {
	for canonical, patterns := range tamilPatterns {
		for _, p := range patterns {
			if strings.Contains(rawText, p) {
				loc, err := r.Locations.GetByExactName(ctx, canonical)
				if err != nil {
					return nil, err
				}
				if loc != nil {
					r.Log.Debug().Str("raw", rawText).Str("resolved", canonical).Msg("resolved tamil pattern")
					return &Resolution{Location: *loc, Method: ResolvedPattern, Similarity: 0.95}, nil
				}
			}
		}
	}

	method := ResolvedExact
	name := key
	if corrected := r.Matcher.CorrectCommonOCRErrors(key); corrected != key {
		r.Log.Debug().Str("raw", key).Str("corrected", corrected).Msg("ocr correction applied")
		name = corrected
		method = ResolvedCorrected
	}

	loc, err := r.Locations.GetByExactName(ctx, name)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		return &Resolution{Location: *loc, Method: method, Similarity: 1.0}, nil
	}

	names, err := r.Locations.Names(ctx)
	if err != nil {
		return nil, err
	}
	best, ok := r.Matcher.FindBestMatch(name, names, r.MaxDistance)
	if !ok {
		return nil, nil
	}
	loc, err = r.Locations.GetByExactName(ctx, best)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	sim := r.Matcher.Similarity(name, best)
	r.Log.Debug().Str("raw", rawText).Str("resolved", best).Float64("similarity", sim).Msg("fuzzy matched location")
	return &Resolution{Location: *loc, Method: ResolvedFuzzy, Similarity: sim}, nil
}
