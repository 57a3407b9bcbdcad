// Package eligibility scores how well a user profile matches a
// scholarship on a fixed 100-point scale with a transparent,
// criterion-by-criterion breakdown.
//
// Weights: category 30, income 25, state 15, gender 10, education 10,
// source trust 10. The deadline check carries no points but an expired
// deadline forces not_eligible regardless of score.
package eligibility

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vidyarthi-io/scholarseek/internal/safety"
	"github.com/vidyarthi-io/scholarseek/internal/store"
)

// Status is the eligibility verdict.
type Status string

const (
	StatusEligible    Status = "eligible"
	StatusConditional Status = "conditional"
	StatusNotEligible Status = "not_eligible"
)

// Verdict thresholds on the 0-100 score.
const (
	eligibleThreshold    = 85
	conditionalThreshold = 60
)

// Criterion weights. They sum to 100.
const (
	categoryPoints  = 30
	incomePoints    = 25
	statePoints     = 15
	genderPoints    = 10
	educationPoints = 10
	trustPoints     = 10
)

// incomeGraceRatio is the ceiling/income ratio above which an
// over-the-limit applicant still earns partial credit.
const incomeGraceRatio = 0.7

// Criterion is one row of the scoring breakdown.
type Criterion struct {
	Criterion   string `json:"criterion"`
	Passed      bool   `json:"passed"`
	Points      int    `json:"points"`
	MaxPoints   int    `json:"max_points"`
	UserValue   string `json:"user_value"`
	Required    string `json:"required"`
	Explanation string `json:"explanation"`
	Status      string `json:"status"` // pass, partial or fail
}

// Result is the full scoring outcome for one record.
type Result struct {
	Score     int         `json:"match_score"`
	Status    Status      `json:"eligibility_status"`
	Breakdown []Criterion `json:"match_reasons"`
}

// InferTrust derives a trust value for records that carry none:
// government providers are most trusted, then gov.in sources, then
// everything else.
func InferTrust(rec *store.Scholarship) float64 {
	if rec.TrustScore != nil {
		return *rec.TrustScore
	}
	if strings.Contains(strings.ToLower(rec.ProviderType), "government") {
		return 0.95
	}
	if strings.HasSuffix(rec.SourceURL, ".gov.in") {
		return 0.9
	}
	return 0.7
}

// Score evaluates rec against profile at the reference time now. The
// breakdown always holds exactly seven entries in a fixed order:
// category, income, state, gender, education, trust, deadline.
func Score(rec *store.Scholarship, profile store.Profile, now time.Time) Result {
	score := 0
	breakdown := make([]Criterion, 0, 7)

	c := scoreCategory(rec, profile)
	score += c.Points
	breakdown = append(breakdown, c)

	c = scoreIncome(rec, profile)
	score += c.Points
	breakdown = append(breakdown, c)

	c = scoreState(rec, profile)
	score += c.Points
	breakdown = append(breakdown, c)

	c = scoreGender(rec, profile)
	score += c.Points
	breakdown = append(breakdown, c)

	c = scoreEducation(rec, profile)
	score += c.Points
	breakdown = append(breakdown, c)

	c = scoreTrust(rec)
	score += c.Points
	breakdown = append(breakdown, c)

	deadline, expired := checkDeadline(rec, now)
	breakdown = append(breakdown, deadline)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	status := StatusNotEligible
	switch {
	case expired:
		status = StatusNotEligible
	case score >= eligibleThreshold:
		status = StatusEligible
	case score >= conditionalThreshold:
		status = StatusConditional
	}

	return Result{Score: score, Status: status, Breakdown: breakdown}
}

func scoreCategory(rec *store.Scholarship, profile store.Profile) Criterion {
	c := Criterion{
		Criterion: "Category Match",
		MaxPoints: categoryPoints,
		UserValue: profile.Category,
		Required:  requiredList(rec.Categories, "All categories"),
	}

	if len(rec.Categories) == 0 || contains(rec.Categories, profile.Category) {
		c.Passed = true
		c.Points = categoryPoints
		c.Status = "pass"
		c.Explanation = fmt.Sprintf("Your category (%s) matches the eligibility criteria", profile.Category)
	} else {
		c.Status = "fail"
		c.Explanation = fmt.Sprintf("This scholarship is specifically for %s students", strings.Join(rec.Categories, ", "))
	}
	return c
}

func scoreIncome(rec *store.Scholarship, profile store.Profile) Criterion {
	income := profile.IncomeValue()
	c := Criterion{
		Criterion: "Income Eligibility",
		MaxPoints: incomePoints,
		UserValue: formatRupees(income),
	}

	if rec.MaxIncome == nil {
		c.Passed = true
		c.Points = incomePoints
		c.Status = "pass"
		c.Required = "No limit"
		c.Explanation = "No income limit for this scholarship"
		return c
	}

	ceiling := *rec.MaxIncome
	c.Required = "<= " + formatRupees(ceiling)

	if income <= ceiling {
		c.Passed = true
		c.Points = incomePoints
		c.Status = "pass"
		c.Explanation = fmt.Sprintf("Your income (%s) is within the limit of %s",
			formatRupees(income), formatRupees(ceiling))
		return c
	}

	// Partial credit when the applicant is only modestly over the limit.
	ratio := float64(ceiling) / float64(income)
	if ratio > incomeGraceRatio {
		c.Points = int(math.Round(incomePoints * ratio * 0.5))
	}
	if c.Points > 0 {
		c.Status = "partial"
	} else {
		c.Status = "fail"
	}
	c.Explanation = fmt.Sprintf("Income exceeds limit by %s", formatRupees(income-ceiling))
	return c
}

func scoreState(rec *store.Scholarship, profile store.Profile) Criterion {
	c := Criterion{
		Criterion: "State/Domicile",
		MaxPoints: statePoints,
		UserValue: profile.State,
		Required:  requiredList(rec.States, store.DefaultState),
	}

	if len(rec.States) == 0 || contains(rec.States, profile.State) || profile.State == store.DefaultState {
		c.Passed = true
		c.Points = statePoints
		c.Status = "pass"
		c.Explanation = "You are eligible based on your state/domicile"
	} else {
		c.Status = "fail"
		c.Explanation = fmt.Sprintf("This scholarship is only for residents of %s", strings.Join(rec.States, ", "))
	}
	return c
}

func scoreGender(rec *store.Scholarship, profile store.Profile) Criterion {
	c := Criterion{
		Criterion: "Gender",
		MaxPoints: genderPoints,
		UserValue: profile.Gender,
		Required:  rec.Gender,
	}

	unspecified := profile.Gender == "" || strings.EqualFold(profile.Gender, store.DefaultGender)
	if rec.Gender == "All" || unspecified || strings.EqualFold(profile.Gender, rec.Gender) {
		c.Passed = true
		c.Points = genderPoints
		c.Status = "pass"
		c.Explanation = "You meet the gender requirements"
	} else {
		c.Status = "fail"
		c.Explanation = fmt.Sprintf("This scholarship is specifically for %s students", rec.Gender)
	}
	return c
}

func scoreEducation(rec *store.Scholarship, profile store.Profile) Criterion {
	userEdu := strings.ToLower(profile.Education)
	c := Criterion{
		Criterion: "Education Level",
		MaxPoints: educationPoints,
		UserValue: profile.Education,
		Required:  requiredList(rec.Education, "All levels"),
	}

	if len(rec.Education) == 0 || userEdu == "" {
		c.Passed = true
		c.Points = educationPoints
		c.Status = "pass"
		c.Explanation = "Education level requirement met"
		return c
	}

	// Substring match in either direction so "undergraduate" matches
	// "undergraduate engineering" and vice versa.
	for _, level := range rec.Education {
		lower := strings.ToLower(level)
		if strings.Contains(lower, userEdu) || strings.Contains(userEdu, lower) {
			c.Passed = true
			c.Points = educationPoints
			c.Status = "pass"
			c.Explanation = "Your education level matches the requirements"
			return c
		}
	}

	c.Status = "fail"
	c.Explanation = fmt.Sprintf("This scholarship requires %s level education", strings.Join(rec.Education, ", "))
	return c
}

func scoreTrust(rec *store.Scholarship) Criterion {
	trust := InferTrust(rec)
	points := int(math.Round(trustPoints * trust))

	c := Criterion{
		Criterion: "Source Trust",
		Passed:    trust >= 0.7,
		Points:    points,
		MaxPoints: trustPoints,
		UserValue: verifiedLabel(rec.Verified),
		Required:  "Trusted source",
		Explanation: fmt.Sprintf("Trust score: %d%%",
			int(math.Round(trust*100))),
	}
	if c.Passed {
		c.Status = "pass"
	} else {
		c.Status = "partial"
	}
	return c
}

func checkDeadline(rec *store.Scholarship, now time.Time) (Criterion, bool) {
	info := safety.ParseDeadline(rec.Deadline, now)

	c := Criterion{
		Criterion:   "Deadline",
		Passed:      !info.IsExpired,
		UserValue:   now.Format("2006-01-02"),
		Required:    rec.Deadline,
		Explanation: info.DisplayText,
	}
	if info.IsExpired {
		c.Status = "fail"
	} else {
		c.Status = "pass"
	}
	return c, info.IsExpired
}

func requiredList(items []string, unrestricted string) string {
	if len(items) == 0 {
		return unrestricted
	}
	return strings.Join(items, ", ")
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func verifiedLabel(verified bool) string {
	if verified {
		return "Verified"
	}
	return "Not verified"
}

// formatRupees renders an amount with a rupee prefix and thousands
// separators, e.g. 250000 -> "Rs 250,000".
func formatRupees(n int) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return "Rs " + b.String()
}
