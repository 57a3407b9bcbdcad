// Package store holds the canonical scholarship record schema, the
// normalization boundary for raw attribute maps, and the in-memory
// BM25 lexical index built over a loaded record set.
package store

// Scholarship is the canonical record schema. Raw attribute maps from the
// record source are normalized into this shape once, at load time; all
// downstream scoring works on these explicit fields, never on raw keys.
type Scholarship struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Provider     string   `yaml:"provider" json:"provider"`
	ProviderType string   `yaml:"provider_type" json:"provider_type"`
	Description  string   `yaml:"description" json:"description"`
	Amount       int      `yaml:"amount" json:"amount"`
	Categories   []string `yaml:"categories" json:"categories"`
	States       []string `yaml:"states" json:"states"`
	Gender       string   `yaml:"gender" json:"gender"`
	Education    []string `yaml:"education_levels" json:"education_levels"`

	// MaxIncome is the annual income ceiling in rupees. Nil means no limit.
	MaxIncome *int `yaml:"max_income" json:"max_income"`

	// Deadline is the application deadline in YYYY-MM-DD form, empty when
	// the scheme is rolling.
	Deadline string `yaml:"deadline" json:"deadline"`

	// RequiredDocuments lists document identifiers applicants must submit.
	RequiredDocuments []string `yaml:"required_documents" json:"required_documents"`

	ApplicationLink string `yaml:"application_link" json:"application_link"`
	NotificationURL string `yaml:"notification_url" json:"notification_url"`
	PortalURL       string `yaml:"portal_url" json:"portal_url"`
	SourceURL       string `yaml:"source_url" json:"source_url"`
	Verified        bool   `yaml:"verified" json:"verified"`

	// TrustScore is the record's own [0,1] trust value. Nil means it must
	// be inferred from provider heuristics at scoring time.
	TrustScore *float64 `yaml:"trust_score" json:"trust_score"`
}

// SearchText returns the text indexed for lexical and vector retrieval:
// name, provider, description and category labels concatenated.
func (s *Scholarship) SearchText() string {
	text := s.Name + " " + s.Provider + " " + s.Description
	for _, c := range s.Categories {
		text += " " + c
	}
	return text
}

// Profile describes the user seeking a match. Zero values are replaced
// with safe defaults by Normalize; unknown values never error.
type Profile struct {
	Category string `yaml:"category" json:"category"`
	State    string `yaml:"state" json:"state"`

	// Income is the annual family income in rupees. Nil means unspecified
	// and takes the default; explicit zero is a valid value (no family
	// income).
	Income *int `yaml:"income" json:"income"`

	Education string `yaml:"education" json:"education"`
	Gender    string `yaml:"gender" json:"gender"`
}

// Default profile values, matching the query surface contract.
const (
	DefaultCategory = "General"
	DefaultState    = "All India"
	DefaultIncome   = 500000
	DefaultGender   = "Any"
)

// knownCategories is the closed set of reservation categories. Anything
// outside it falls back to DefaultCategory rather than erroring.
var knownCategories = map[string]struct{}{
	"SC": {}, "ST": {}, "OBC": {}, "General": {},
	"Minority": {}, "EWS": {}, "PWD": {}, "All": {},
}

// DefaultProfile returns the profile used when a request carries none.
func DefaultProfile() Profile {
	income := DefaultIncome
	return Profile{
		Category: DefaultCategory,
		State:    DefaultState,
		Income:   &income,
		Gender:   DefaultGender,
	}
}

// Normalize returns a copy of the profile with defaults applied and
// out-of-range values clamped. An unset income takes the default;
// explicit zero is a valid value (no family income) and only negative
// incomes are corrected. It never fails.
func (p Profile) Normalize() Profile {
	if _, ok := knownCategories[p.Category]; !ok {
		p.Category = DefaultCategory
	}
	if p.State == "" {
		p.State = DefaultState
	}
	if p.Income == nil {
		income := DefaultIncome
		p.Income = &income
	} else if *p.Income < 0 {
		income := 0
		p.Income = &income
	}
	if p.Gender == "" {
		p.Gender = DefaultGender
	}
	return p
}

// IncomeValue returns the profile's income, defaulting when unset.
func (p Profile) IncomeValue() int {
	if p.Income == nil {
		return DefaultIncome
	}
	return *p.Income
}
