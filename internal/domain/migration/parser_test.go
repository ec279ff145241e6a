package migration

import (
	"errors"
	"strings"
	"testing"
)

const tehsildarCSV = `पीठासीन अधिकारी,न्यायालय,न्यायालयीन प्रकरण,,,नामांतरण,,,बटवारा,,,वसूली
,,पंजीकृत,निराकृत,लंबित,पंजीकृत,निराकृत,लंबित,पंजीकृत,निराकृत,लंबित,
राम कुमार,court-a,100,96,4,50,25,25,10,12,0,85.5
श्याम वर्मा,court-b,0,0,0,40,10,30,,,,62
,court-c,10,5,5,,,,,,,
`

func tehsildarConfig(t *testing.T) ParserConfig {
	t.Helper()
	cfg, err := ConfigFor("revenue-department", "tehsildar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cfg
}

func TestParseCSVExtractsPercentageTriplets(t *testing.T) {
	cfg := tehsildarConfig(t)
	records, mappings, err := ParseCSV(tehsildarCSV, cfg, RoleTehsildar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(mappings) == 0 {
		t.Fatalf("expected header mappings to be reported")
	}

	first := records[0]
	if first.OfficerName != "राम कुमार" || first.CourtName != "court-a" {
		t.Fatalf("unexpected first record identity: %+v", first)
	}
	if got := first.Values["court_case_disposal"]; got != 96.00 {
		t.Fatalf("expected 96.00, got %v", got)
	}
	if got := first.Values["namantaran_disposal"]; got != 50.00 {
		t.Fatalf("expected 50.00, got %v", got)
	}
	// 12 disposed of 10 registered clamps at 100.
	if got := first.Values["batwara_disposal"]; got != 100.00 {
		t.Fatalf("expected clamp at 100, got %v", got)
	}
	if got := first.Values["revenue_recovery"]; got != 85.5 {
		t.Fatalf("expected direct value 85.5, got %v", got)
	}
}

func TestParseCSVZeroRegisteredYieldsNoValue(t *testing.T) {
	cfg := tehsildarConfig(t)
	records, _, err := ParseCSV(tehsildarCSV, cfg, RoleTehsildar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := records[1]
	if second.OfficerName != "श्याम वर्मा" {
		t.Fatalf("unexpected second record: %+v", second)
	}
	if _, ok := second.Values["court_case_disposal"]; ok {
		t.Fatalf("zero registered must not produce a percentage")
	}
	if got := second.Values["namantaran_disposal"]; got != 25.00 {
		t.Fatalf("expected 25.00, got %v", got)
	}
}

func TestParseCSVDropsRowsWithoutOfficerName(t *testing.T) {
	cfg := tehsildarConfig(t)
	records, _, err := ParseCSV(tehsildarCSV, cfg, RoleTehsildar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, record := range records {
		if record.OfficerName == "" {
			t.Fatalf("row without officer name must be dropped")
		}
	}
}

func TestParseCSVDropsRowsWithoutAnyValue(t *testing.T) {
	cfg := tehsildarConfig(t)
	csv := strings.Join([]string{
		"पीठासीन अधिकारी,न्यायालय,न्यायालयीन प्रकरण",
		",,पंजीकृत",
		"मोहन लाल,court-z,not-a-number",
	}, "\n")
	records, _, err := ParseCSV(csv, cfg, RoleTehsildar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestParseCSVCourtOnlyForTehsildar(t *testing.T) {
	cfg := tehsildarConfig(t)
	records, _, err := ParseCSV(tehsildarCSV, cfg, "nayab-tehsildar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, record := range records {
		if record.CourtName != "" {
			t.Fatalf("court name must only be captured for tehsildar rows")
		}
	}
}

func TestParseCSVRejectsTooFewLines(t *testing.T) {
	cfg := tehsildarConfig(t)
	if _, _, err := ParseCSV("a single header line", cfg, RoleTehsildar); !errors.Is(err, ErrMalformedCSV) {
		t.Fatalf("expected ErrMalformedCSV, got %v", err)
	}
}

func TestConfigForUnknownKey(t *testing.T) {
	if _, err := ConfigFor("finance-department", "clerk"); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestParseCSVSkipsRowsShorterThanOfficerColumn(t *testing.T) {
	// Officer column sits at index 2, after serial number and court.
	csv := strings.Join([]string{
		"क्रमांक,न्यायालय,पीठासीन अधिकारी,वसूली",
		",,,",
		"1,court-a",
		"2,court-b,मोहन लाल,77.5",
	}, "\n")

	records, _, err := ParseCSV(csv, tehsildarConfig(t), RoleTehsildar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("short row must be dropped, got %d records", len(records))
	}
	got := records[0]
	if got.OfficerName != "मोहन लाल" || got.CourtName != "court-b" {
		t.Fatalf("unexpected record identity: %+v", got)
	}
	if got.Values["revenue_recovery"] != 77.5 {
		t.Fatalf("expected direct value 77.5, got %+v", got.Values)
	}
}
