package store

import (
	"fmt"
	"strings"
)

// RawRecord is one record as supplied by the record source: a loosely typed
// attribute map with historically divergent field names. NormalizeRecord is
// the only place those aliases are resolved.
type RawRecord map[string]any

// Alias precedence is first-non-nil wins, in the order the fields are
// listed here. A restriction of ["All"] (or the scalar "All") means no
// restriction and normalizes to an empty list.
var (
	categoryAliases  = []string{"category", "categories"}
	incomeAliases    = []string{"max_income", "income_limit"}
	educationAliases = []string{"education_level", "education_levels"}
	deadlineAliases  = []string{"application_deadline", "deadline"}
)

// NormalizeRecord converts a raw attribute map into the canonical schema.
// Missing optional attributes become zero values or nil; only a missing or
// empty identifier is an error, since every downstream stage keys on it.
func NormalizeRecord(raw RawRecord) (*Scholarship, error) {
	id := stringAttr(raw, "id")
	if id == "" {
		return nil, fmt.Errorf("record has no id (name=%q)", stringAttr(raw, "name"))
	}

	s := &Scholarship{
		ID:                id,
		Name:              stringAttr(raw, "name"),
		Provider:          stringAttr(raw, "provider"),
		ProviderType:      stringAttr(raw, "provider_type", "scholarship_type"),
		Description:       stringAttr(raw, "description"),
		Amount:            intAttr(raw, "amount"),
		Categories:        restrictionList(raw, categoryAliases),
		States:            restrictionList(raw, []string{"states", "state"}),
		Gender:            stringAttr(raw, "gender"),
		Education:         restrictionList(raw, educationAliases),
		Deadline:          stringAttr(raw, deadlineAliases...),
		RequiredDocuments: restrictionList(raw, []string{"required_documents"}),
		ApplicationLink:   stringAttr(raw, "application_link"),
		NotificationURL:   stringAttr(raw, "official_notification_url", "notification_url"),
		PortalURL:         stringAttr(raw, "portal_url"),
		SourceURL:         stringAttr(raw, "source_url"),
		Verified:          boolAttr(raw, "verified"),
	}

	if s.Gender == "" {
		s.Gender = "All"
	}

	for _, key := range incomeAliases {
		if v, ok := raw[key]; ok && v != nil {
			n := toInt(v)
			s.MaxIncome = &n
			break
		}
	}

	if v, ok := raw["trust_score"]; ok && v != nil {
		if f, ok := toFloat(v); ok {
			s.TrustScore = &f
		}
	}

	return s, nil
}

// stringAttr returns the first non-empty string value among the aliases.
func stringAttr(raw RawRecord, aliases ...string) string {
	for _, key := range aliases {
		if v, ok := raw[key]; ok && v != nil {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func intAttr(raw RawRecord, key string) int {
	if v, ok := raw[key]; ok && v != nil {
		return toInt(v)
	}
	return 0
}

func boolAttr(raw RawRecord, key string) bool {
	if v, ok := raw[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// restrictionList resolves a list-valued restriction attribute. Scalar
// strings become single-element lists; "All" in any form means no
// restriction and yields nil.
func restrictionList(raw RawRecord, aliases []string) []string {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		var items []string
		switch val := v.(type) {
		case string:
			if val != "" {
				items = []string{val}
			}
		case []string:
			items = val
		case []any:
			for _, e := range val {
				if s, ok := e.(string); ok && s != "" {
					items = append(items, s)
				}
			}
		}
		if len(items) == 1 && strings.EqualFold(items[0], "All") {
			return nil
		}
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case uint64:
		return int(n)
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
