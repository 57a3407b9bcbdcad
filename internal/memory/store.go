// Package memory records user interactions and turns them into
// personalization boosts. It is a best-effort collaborator: every read
// path degrades to "no personalization" instead of failing a search.
package memory

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vidyarthi-io/scholarseek/internal/store"
)

// Interaction types, strongest signal first.
const (
	InteractionShortlist = "shortlist"
	InteractionClick     = "click"
	InteractionSearch    = "search"
)

// interactionWeights maps each interaction type to its boost weight.
var interactionWeights = map[string]float64{
	InteractionShortlist: 0.15,
	InteractionClick:     0.10,
	InteractionSearch:    0.05,
}

// MaxBoost caps any single record's personalization boost.
const MaxBoost = 0.3

// historyWindow bounds how many recent interactions feed the boost
// computation.
const historyWindow = 20

// Interaction is one logged user action.
type Interaction struct {
	ID              string
	UserID          string
	ScholarshipID   string
	ScholarshipName string
	Type            string
	Query           string
	CreatedAt       time.Time
}

// UserID derives a stable pseudonymous identifier from profile fields.
// The same profile always maps to the same 12-hex id; no account system
// is involved.
func UserID(profile store.Profile) string {
	key := fmt.Sprintf("%s|%s|%s|%s",
		profile.Category, profile.State, profile.Education, profile.Gender)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:12]
}

// Store persists interactions in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the interaction database at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create interaction db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open interaction db %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		scholarship_id TEXT NOT NULL,
		scholarship_name TEXT,
		interaction_type TEXT NOT NULL,
		query TEXT,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_user
		ON interactions(user_id, created_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create interaction schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Log persists one interaction. A missing id gets a fresh UUID and a
// zero timestamp becomes now.
func (s *Store) Log(ctx context.Context, in Interaction) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	if _, ok := interactionWeights[in.Type]; !ok {
		return fmt.Errorf("unknown interaction type %q", in.Type)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interactions
			(id, user_id, scholarship_id, scholarship_name, interaction_type, query, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.UserID, in.ScholarshipID, in.ScholarshipName,
		in.Type, in.Query, in.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// History returns the user's most recent interactions, newest first.
func (s *Store) History(ctx context.Context, userID string, limit int) ([]Interaction, error) {
	if limit <= 0 {
		limit = historyWindow
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, scholarship_id, scholarship_name, interaction_type, query, created_at
		FROM interactions
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var in Interaction
		var created string
		if err := rows.Scan(&in.ID, &in.UserID, &in.ScholarshipID,
			&in.ScholarshipName, &in.Type, &in.Query, &created); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		in.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, in)
	}
	return out, rows.Err()
}

// BoostsFor computes per-record personalization boosts for a query from
// the user's recent history. Each interaction contributes its type
// weight scaled by the term overlap between the query and the
// interaction's text; a record keeps its highest boost, capped at
// MaxBoost. Any failure yields an empty map, never an error: a broken
// memory store must not degrade search beyond losing personalization.
func (s *Store) BoostsFor(ctx context.Context, userID, query string) map[string]float64 {
	boosts := make(map[string]float64)

	history, err := s.History(ctx, userID, historyWindow)
	if err != nil {
		slog.Warn("personalization recall failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return boosts
	}

	queryTerms := termSet(query)
	for _, in := range history {
		weight := interactionWeights[in.Type]
		sim := overlap(queryTerms, termSet(in.ScholarshipName+" "+in.Query))

		boost := weight * sim
		if boost > MaxBoost {
			boost = MaxBoost
		}
		if boost > boosts[in.ScholarshipID] {
			boosts[in.ScholarshipID] = boost
		}
	}

	for id, b := range boosts {
		if b == 0 {
			delete(boosts, id)
		}
	}
	if len(boosts) > 0 {
		slog.Debug("personalization boosts applied",
			slog.String("user_id", userID),
			slog.Int("records", len(boosts)))
	}
	return boosts
}

func termSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range store.Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// overlap is the fraction of query terms that appear in the interaction
// text, in [0,1]. An empty query yields zero: browse mode carries no
// personalization signal.
func overlap(query, text map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	matched := 0
	for term := range query {
		if _, ok := text[term]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}
