package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/perundhu/perundhu/internal/database/repository"
)

// knownCities is the canonical Tamil Nadu gazetteer used for fuzzy lookup of
// OCR-extracted place names. Locations contributed later are upserted
// alongside these.
var knownCities = []string{
	"CHENNAI", "COIMBATORE", "MADURAI", "TRICHY", "SALEM", "TIRUNELVELI",
	"KANYAKUMARI", "THANJAVUR", "ERODE", "VELLORE", "TIRUPPUR", "KARUR",
	"KUMBAKONAM", "THOOTHUKUDI", "PATTUKKOTTAI", "VIRUDHUNAGAR", "THENI",
	"DINDIGUL", "PUDUKKOTTAI", "NAGERCOIL", "BENGALURU", "TIRUVANNAMALAI",
	"ARIYALUR", "PERAMBALUR", "NAMAKKAL", "KRISHNAGIRI", "DHARMAPURI",
	"HOSUR", "THIRUCHENDUR", "ARANI", "KANCHIPURAM", "RAMANATHAPURAM",
	"RAMESHWARAM", "SIVAKASI", "SIVAGANGA", "CUDDALORE", "VILLUPURAM",
	"TINDIVANAM", "CHIDAMBARAM", "NAGAPATTINAM", "MAYILADUTHURAI",
	"TIRUVARUR", "KARAIKAL", "PONDICHERRY", "OOTY", "COONOOR", "METTUPALAYAM",
	"POLLACHI", "UDUMALPET", "PALANI", "KODAIKANAL", "TENKASI", "SANKARANKOVIL",
	"KOVILPATTI", "ARUPPUKKOTTAI", "PARAMAKUDI", "MANDAPAM", "PAMBAN",
	"DHANUSHKODI",
}

// SeedGazetteer ensures the known-city list exists in the locations table.
// It is idempotent and safe to run on every startup.
func SeedGazetteer(ctx context.Context, db *sql.DB) error {
	locRepo := repository.NewLocationRepo(db)
	for _, name := range knownCities {
		l := repository.Location{ID: deterministicLocationID(name), Name: name}
		if err := locRepo.Upsert(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// deterministicLocationID keeps seeded ids stable across databases so fixture
// data and dumps stay comparable.
func deterministicLocationID(name string) string {
	key := strings.ToUpper(strings.TrimSpace(name))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("location:"+key)).String()
}
