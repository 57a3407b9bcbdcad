package eligibility

import "github.com/vidyarthi-io/scholarseek/internal/store"

// MissingDocuments lists the required documents the applicant likely
// still has to arrange. Everyone is assumed to hold an Aadhaar card and
// a bank passbook; SC/ST applicants are assumed to hold their caste or
// tribe certificate.
func MissingDocuments(rec *store.Scholarship, profile store.Profile) []string {
	likelyHas := map[string]bool{
		"aadhaar":       true,
		"bank_passbook": true,
	}
	switch profile.Category {
	case "SC":
		likelyHas["caste_certificate"] = true
	case "ST":
		likelyHas["tribe_certificate"] = true
	}

	var missing []string
	for _, doc := range rec.RequiredDocuments {
		if !likelyHas[doc] {
			missing = append(missing, doc)
		}
	}
	return missing
}
