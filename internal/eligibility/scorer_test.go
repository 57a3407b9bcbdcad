package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyarthi-io/scholarseek/internal/store"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func breakdownEntry(t *testing.T, r Result, name string) Criterion {
	t.Helper()
	for _, c := range r.Breakdown {
		if c.Criterion == name {
			return c
		}
	}
	t.Fatalf("breakdown entry %q not found", name)
	return Criterion{}
}

func TestScore_UnrestrictedRecordScoresFull(t *testing.T) {
	rec := store.Scholarship{
		ID:         "open",
		Name:       "Open Merit Scholarship",
		Gender:     "All",
		TrustScore: floatPtr(0.9),
		Deadline:   "2026-12-31",
	}
	profile := store.DefaultProfile()

	result := Score(&rec, profile, testNow)
	assert.Equal(t, 99, result.Score)
	assert.Equal(t, StatusEligible, result.Status)
}

func TestScore_BreakdownIsOrderStableWithSevenEntries(t *testing.T) {
	rec := store.Scholarship{ID: "x", Gender: "All"}
	result := Score(&rec, store.DefaultProfile(), testNow)

	require.Len(t, result.Breakdown, 7)
	wantOrder := []string{
		"Category Match", "Income Eligibility", "State/Domicile",
		"Gender", "Education Level", "Source Trust", "Deadline",
	}
	for i, name := range wantOrder {
		assert.Equal(t, name, result.Breakdown[i].Criterion)
	}
}

func TestScore_CategoryMismatch(t *testing.T) {
	rec := store.Scholarship{ID: "sc-only", Categories: []string{"SC", "ST"}, Gender: "All"}

	result := Score(&rec, store.Profile{Category: "General", State: "All India", Gender: "Any"}, testNow)
	entry := breakdownEntry(t, result, "Category Match")
	assert.False(t, entry.Passed)
	assert.Zero(t, entry.Points)

	result = Score(&rec, store.Profile{Category: "SC", State: "All India", Gender: "Any"}, testNow)
	entry = breakdownEntry(t, result, "Category Match")
	assert.True(t, entry.Passed)
	assert.Equal(t, 30, entry.Points)
}

func TestScore_IncomePartialCredit(t *testing.T) {
	rec := store.Scholarship{ID: "cap", MaxIncome: intPtr(100000), Gender: "All"}

	// Ratio 100000/120000 = 0.833 > 0.7: partial credit of round(25*0.833*0.5) = 10.
	result := Score(&rec, store.Profile{Category: "General", State: "All India", Income: intPtr(120000)}, testNow)
	entry := breakdownEntry(t, result, "Income Eligibility")
	assert.False(t, entry.Passed)
	assert.Equal(t, 10, entry.Points)
	assert.Equal(t, "partial", entry.Status)

	// Ratio 100000/200000 = 0.5 <= 0.7: no credit.
	result = Score(&rec, store.Profile{Category: "General", State: "All India", Income: intPtr(200000)}, testNow)
	entry = breakdownEntry(t, result, "Income Eligibility")
	assert.Zero(t, entry.Points)
	assert.Equal(t, "fail", entry.Status)
}

func TestScore_UnsetIncomeUsesDefault(t *testing.T) {
	rec := store.Scholarship{ID: "cap", MaxIncome: intPtr(250000), Gender: "All"}

	result := Score(&rec, store.Profile{Category: "General", State: "All India"}, testNow)
	entry := breakdownEntry(t, result, "Income Eligibility")
	assert.False(t, entry.Passed, "unspecified income defaults high, it does not pass as zero")
	assert.Equal(t, "Rs 500,000", entry.UserValue)
}

func TestScore_ZeroIncomeWithinAnyCeiling(t *testing.T) {
	rec := store.Scholarship{ID: "cap", MaxIncome: intPtr(100000), Gender: "All", TrustScore: floatPtr(1.0), Deadline: "2026-12-31"}
	result := Score(&rec, store.Profile{Category: "General", State: "All India", Income: intPtr(0)}, testNow)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, StatusEligible, result.Status)
}

func TestScore_StateRestriction(t *testing.T) {
	rec := store.Scholarship{ID: "mh", States: []string{"Maharashtra"}, Gender: "All"}

	result := Score(&rec, store.Profile{Category: "General", State: "Kerala"}, testNow)
	assert.Zero(t, breakdownEntry(t, result, "State/Domicile").Points)

	// "All India" profiles pass every state restriction.
	result = Score(&rec, store.Profile{Category: "General", State: "All India"}, testNow)
	assert.Equal(t, 15, breakdownEntry(t, result, "State/Domicile").Points)
}

func TestScore_GenderRules(t *testing.T) {
	rec := store.Scholarship{ID: "w", Gender: "Female"}

	result := Score(&rec, store.Profile{Category: "General", Gender: "Male"}, testNow)
	assert.Zero(t, breakdownEntry(t, result, "Gender").Points)

	result = Score(&rec, store.Profile{Category: "General", Gender: "Female"}, testNow)
	assert.Equal(t, 10, breakdownEntry(t, result, "Gender").Points)

	// Unspecified gender passes restricted schemes.
	result = Score(&rec, store.Profile{Category: "General", Gender: "Any"}, testNow)
	assert.Equal(t, 10, breakdownEntry(t, result, "Gender").Points)
}

func TestScore_EducationSubstringEitherDirection(t *testing.T) {
	rec := store.Scholarship{ID: "e", Education: []string{"Undergraduate"}, Gender: "All"}

	result := Score(&rec, store.Profile{Category: "General", Education: "undergraduate engineering"}, testNow)
	assert.Equal(t, 10, breakdownEntry(t, result, "Education Level").Points)

	result = Score(&rec, store.Profile{Category: "General", Education: "Postgraduate"}, testNow)
	assert.Zero(t, breakdownEntry(t, result, "Education Level").Points)
}

func TestScore_ExpiredDeadlineForcesNotEligible(t *testing.T) {
	rec := store.Scholarship{
		ID:         "late",
		Gender:     "All",
		TrustScore: floatPtr(1.0),
		Deadline:   "2026-01-01",
	}
	result := Score(&rec, store.DefaultProfile(), testNow)

	assert.Equal(t, 100, result.Score, "expiry does not change the score")
	assert.Equal(t, StatusNotEligible, result.Status)
	entry := breakdownEntry(t, result, "Deadline")
	assert.False(t, entry.Passed)
	assert.Zero(t, entry.MaxPoints)
}

func TestScore_StatusThresholds(t *testing.T) {
	// Category fail (0/30) with everything else passing and trust 1.0
	// lands at exactly 70: conditional.
	rec := store.Scholarship{ID: "t", Categories: []string{"ST"}, Gender: "All", TrustScore: floatPtr(1.0)}
	result := Score(&rec, store.Profile{Category: "General", State: "All India"}, testNow)
	assert.Equal(t, 70, result.Score)
	assert.Equal(t, StatusConditional, result.Status)

	// Category and state fail: 55, not eligible.
	rec.States = []string{"Goa"}
	result = Score(&rec, store.Profile{Category: "General", State: "Kerala"}, testNow)
	assert.Equal(t, 55, result.Score)
	assert.Equal(t, StatusNotEligible, result.Status)
}

func TestInferTrust(t *testing.T) {
	assert.InDelta(t, 0.42, InferTrust(&store.Scholarship{TrustScore: floatPtr(0.42)}), 1e-9)
	assert.InDelta(t, 0.95, InferTrust(&store.Scholarship{ProviderType: "State Government"}), 1e-9)
	assert.InDelta(t, 0.9, InferTrust(&store.Scholarship{SourceURL: "https://scholarships.gov.in"}), 1e-9)
	assert.InDelta(t, 0.7, InferTrust(&store.Scholarship{Provider: "Some NGO"}), 1e-9)
}

func TestRadar(t *testing.T) {
	rec := store.Scholarship{
		ID:         "r",
		Gender:     "All",
		MaxIncome:  intPtr(100000),
		TrustScore: floatPtr(0.8),
		Deadline:   "2026-12-31",
	}
	result := Score(&rec, store.Profile{Category: "General", State: "All India", Income: intPtr(120000)}, testNow)
	radar := Radar(result.Breakdown)

	assert.Equal(t, 100, radar[AxisCategory])
	assert.Equal(t, 40, radar[AxisIncome], "10 of 25 partial points")
	assert.Equal(t, 100, radar[AxisLocation])
	assert.Equal(t, 100, radar[AxisEducation])
	assert.Equal(t, 100, radar[AxisTiming], "non-expired deadline dominates trust")
}

func TestRadar_ExpiredDeadlineTimingFallsBackToTrust(t *testing.T) {
	rec := store.Scholarship{ID: "r", Gender: "All", TrustScore: floatPtr(0.8), Deadline: "2026-01-01"}
	result := Score(&rec, store.DefaultProfile(), testNow)
	radar := Radar(result.Breakdown)

	assert.Equal(t, 80, radar[AxisTiming])
}

func TestMissingDocuments(t *testing.T) {
	rec := store.Scholarship{
		RequiredDocuments: []string{"aadhaar", "income_certificate", "caste_certificate"},
	}

	missing := MissingDocuments(&rec, store.Profile{Category: "General"})
	assert.Equal(t, []string{"income_certificate", "caste_certificate"}, missing)

	missing = MissingDocuments(&rec, store.Profile{Category: "SC"})
	assert.Equal(t, []string{"income_certificate"}, missing)

	assert.Empty(t, MissingDocuments(&store.Scholarship{}, store.Profile{}))
}
