package eligibility

// Radar axes, in display order.
const (
	AxisCategory  = "Category"
	AxisIncome    = "Income"
	AxisLocation  = "Location"
	AxisEducation = "Education"
	AxisTiming    = "Timing"
)

// Radar projects a scoring breakdown onto five 0-100 chart axes. Trust
// and deadline share the Timing axis; the higher of the two wins, with
// the pointless deadline check counting as 100 unless expired.
func Radar(breakdown []Criterion) map[string]int {
	radar := map[string]int{
		AxisCategory:  0,
		AxisIncome:    0,
		AxisLocation:  0,
		AxisEducation: 0,
		AxisTiming:    0,
	}

	for _, c := range breakdown {
		pct := criterionPercent(c)
		switch c.Criterion {
		case "Category Match":
			radar[AxisCategory] = pct
		case "Income Eligibility":
			radar[AxisIncome] = pct
		case "State/Domicile":
			radar[AxisLocation] = pct
		case "Education Level":
			radar[AxisEducation] = pct
		case "Source Trust", "Deadline":
			if pct > radar[AxisTiming] {
				radar[AxisTiming] = pct
			}
		}
	}
	return radar
}

// criterionPercent converts a breakdown entry to a 0-100 value. Entries
// with no point budget (the deadline check) map to 100 when passed and
// 0 when failed.
func criterionPercent(c Criterion) int {
	if c.MaxPoints == 0 {
		if c.Passed {
			return 100
		}
		return 0
	}
	return c.Points * 100 / c.MaxPoints
}
