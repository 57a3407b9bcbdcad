// Package safety flags scam indicators, scores provider trust and
// classifies application deadlines. It never rejects a record outright;
// callers decide what to do with an unsafe one.
package safety

import (
	"fmt"
	"strings"
	"time"

	"github.com/vidyarthi-io/scholarseek/internal/store"
)

// scamPhrases are the substrings that mark a listing as suspicious.
// Matching is case-insensitive over the record's name and description.
var scamPhrases = []string{
	"guaranteed selection",
	"100% success",
	"pay now",
	"processing fee required",
	"bank details for verification",
	"whatsapp only contact",
	"personal pan/aadhaar share",
	"urgent apply now",
	"limited seats",
	"act fast",
	"confirm your slot",
	"registration fee",
	"admission guaranteed",
	"no documents required",
	"instant approval",
	"wire transfer",
	"western union",
	"lottery winner",
	"selected randomly",
	"claim your prize",
	"send money",
	"upfront payment",
	"confidential opportunity",
}

// DetectScamIndicators returns every scam phrase found in text, in the
// table's order. Empty text yields nil.
func DetectScamIndicators(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var detected []string
	for _, phrase := range scamPhrases {
		if strings.Contains(lower, phrase) {
			detected = append(detected, phrase)
		}
	}
	return detected
}

// trustRule is one row of the trust scoring table: a predicate over the
// record and the score delta it contributes when it holds.
type trustRule struct {
	name    string
	applies func(*store.Scholarship) bool
	delta   float64
}

// trustBase is the neutral starting score.
const trustBase = 0.5

var trustRules = []trustRule{
	{
		name: "government provider",
		applies: func(s *store.Scholarship) bool {
			return strings.EqualFold(s.ProviderType, "government")
		},
		delta: 0.30,
	},
	{
		name: "csr provider",
		applies: func(s *store.Scholarship) bool {
			return strings.EqualFold(s.ProviderType, "csr")
		},
		delta: 0.20,
	},
	{
		name:    "verified",
		applies: func(s *store.Scholarship) bool { return s.Verified },
		delta:   0.15,
	},
	{
		name:    "official notification url",
		applies: func(s *store.Scholarship) bool { return s.NotificationURL != "" },
		delta:   0.05,
	},
	{
		name: "government portal",
		applies: func(s *store.Scholarship) bool {
			return strings.Contains(s.PortalURL, "gov.in")
		},
		delta: 0.05,
	},
}

// scamPenalty is subtracted per detected scam phrase.
const scamPenalty = 0.10

// TrustScore computes the [0,1] trust score for a record from the rule
// table, independent of any trust value the record itself carries.
func TrustScore(rec *store.Scholarship) float64 {
	score := trustBase
	for _, rule := range trustRules {
		if rule.applies(rec) {
			score += rule.delta
		}
	}

	indicators := DetectScamIndicators(rec.Name + " " + rec.Description)
	score -= float64(len(indicators)) * scamPenalty

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Urgency buckets for deadline display.
type Urgency string

const (
	UrgencyExpired Urgency = "expired"
	UrgencyToday   Urgency = "today"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyWarning Urgency = "warning"
	UrgencyNormal  Urgency = "normal"
)

// noDeadlineDays is the sentinel for missing or unparseable deadlines:
// far enough out to always land in the normal bucket.
const noDeadlineDays = 999

// DeadlineInfo describes a record's deadline relative to a reference day.
type DeadlineInfo struct {
	Deadline      string  `json:"deadline"`
	IsExpired     bool    `json:"is_expired"`
	DaysRemaining int     `json:"days_remaining"`
	DisplayText   string  `json:"display_text"`
	Urgency       Urgency `json:"urgency_level"`
}

// ParseDeadline classifies a YYYY-MM-DD deadline against now. A missing
// or unparseable deadline is treated as non-expired with the far-future
// sentinel, so unknown deadlines never disqualify a record.
func ParseDeadline(deadline string, now time.Time) DeadlineInfo {
	if deadline == "" {
		return DeadlineInfo{
			DaysRemaining: noDeadlineDays,
			DisplayText:   "No deadline specified",
			Urgency:       UrgencyNormal,
		}
	}

	due, err := time.ParseInLocation("2006-01-02", deadline, now.Location())
	if err != nil {
		return DeadlineInfo{
			Deadline:      deadline,
			DaysRemaining: noDeadlineDays,
			DisplayText:   "Deadline: " + deadline,
			Urgency:       UrgencyNormal,
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(due.Sub(today).Hours() / 24)

	info := DeadlineInfo{Deadline: deadline, DaysRemaining: days}
	switch {
	case days < 0:
		info.IsExpired = true
		info.DisplayText = fmt.Sprintf("Expired %d days ago", -days)
		info.Urgency = UrgencyExpired
	case days == 0:
		info.DisplayText = "Deadline today"
		info.Urgency = UrgencyToday
	case days <= 7:
		info.DisplayText = fmt.Sprintf("%d days left, apply urgently", days)
		info.Urgency = UrgencyUrgent
	case days <= 30:
		info.DisplayText = fmt.Sprintf("%d days remaining", days)
		info.Urgency = UrgencyWarning
	default:
		info.DisplayText = fmt.Sprintf("%d days remaining", days)
		info.Urgency = UrgencyNormal
	}
	return info
}

// Report is the full safety assessment for one record.
type Report struct {
	TrustScore     float64      `json:"trust_score"`
	ScamIndicators []string     `json:"scam_indicators"`
	DeadlineInfo   DeadlineInfo `json:"deadline_info"`
	IsSafe         bool         `json:"is_safe"`
	Warnings       []string     `json:"warnings"`
}

// Validate assesses a record: scam indicators over name+description,
// rule-table trust score, deadline classification. A record is safe when
// it has no indicators and trust is at least the neutral base.
func Validate(rec *store.Scholarship, now time.Time) Report {
	indicators := DetectScamIndicators(rec.Name + " " + rec.Description)
	trust := TrustScore(rec)

	warnings := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		warnings = append(warnings, fmt.Sprintf("Detected suspicious pattern: %q", ind))
	}

	return Report{
		TrustScore:     trust,
		ScamIndicators: indicators,
		DeadlineInfo:   ParseDeadline(rec.Deadline, now),
		IsSafe:         len(indicators) == 0 && trust >= trustBase,
		Warnings:       warnings,
	}
}
