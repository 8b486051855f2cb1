package matcher

import "strings"

// defaultCorrections maps known OCR misreads of Tamil Nadu city names to
// their canonical form. Timing boards are printed in a handful of typefaces
// and the upstream OCR engine confuses the same glyphs every time (I/1, I/J,
// O/0, H/N), so an exact lookup catches most failures before any
// distance-based search runs.
var defaultCorrections = map[string]string{
	"CHENNAL":     "CHENNAI",
	"CHENNA1":     "CHENNAI",
	"MADURAJ":     "MADURAI",
	"MADURAJI":    "MADURAI",
	"COIMBAT0RE":  "COIMBATORE",
	"COINBATORE":  "COIMBATORE",
	"RAMESHWARAN": "RAMESHWARAM",
	"RAMESWARAN":  "RAMESHWARAM",
	"KANYAKUMAR1": "KANYAKUMARI",
	"KANYKUMARI":  "KANYAKUMARI",
	"THOOTHUKUD1": "THOOTHUKUDI",
	"TIRUNELVEL1": "TIRUNELVELI",
	"THANJAVOOR":  "THANJAVUR",
	"TANJORE":     "THANJAVUR",
	"BANGALORE":   "BENGALURU",
	"BANGALURU":   "BENGALURU",
	"TNCHY":       "TRICHY",
	"TRICNY":      "TRICHY",
	"TRICHL":      "TRICHY",
	"TUTICORIN":   "THOOTHUKUDI",
	"NAGERCO1L":   "NAGERCOIL",
	"NAGERCOJL":   "NAGERCOIL",
}

// CorrectCommonOCRErrors returns the canonical city name when the
// uppercase-trimmed input exactly matches a known misread, otherwise the
// input unchanged. This is an exact lookup, not a fuzzy one.
func (m *Matcher) CorrectCommonOCRErrors(text string) string {
	if corrected, ok := m.corrections[strings.ToUpper(strings.TrimSpace(text))]; ok {
		return corrected
	}
	return text
}
