package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog is the full record set for one search session. It owns the raw
// records, the id lookup table and the original discovery order. Records
// are read-only once loaded; reloading builds a fresh catalog.
type Catalog struct {
	records []*Scholarship
	byID    map[string]*Scholarship
}

// NewCatalog normalizes raw records into a catalog. Records that fail
// normalization are skipped with a warning, not fatal: one malformed entry
// must not take down the session.
func NewCatalog(raws []RawRecord) *Catalog {
	c := &Catalog{
		records: make([]*Scholarship, 0, len(raws)),
		byID:    make(map[string]*Scholarship, len(raws)),
	}
	for _, raw := range raws {
		rec, err := NormalizeRecord(raw)
		if err != nil {
			slog.Warn("skipping malformed record", slog.String("error", err.Error()))
			continue
		}
		if _, dup := c.byID[rec.ID]; dup {
			slog.Warn("skipping duplicate record id", slog.String("id", rec.ID))
			continue
		}
		c.records = append(c.records, rec)
		c.byID[rec.ID] = rec
	}
	return c
}

// LoadCatalog reads a record dataset from a YAML or JSON file, chosen by
// extension. YAML is the default for unrecognized extensions.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var raws []RawRecord
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("parse dataset JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("parse dataset YAML: %w", err)
		}
	}

	c := NewCatalog(raws)
	slog.Info("dataset loaded",
		slog.String("path", path),
		slog.Int("records", len(c.records)))
	return c, nil
}

// All returns the records in original discovery order. Callers must not
// mutate the returned slice or the records it points to.
func (c *Catalog) All() []*Scholarship {
	return c.records
}

// Get returns the record for id, or nil when unknown.
func (c *Catalog) Get(id string) *Scholarship {
	return c.byID[id]
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// BuildIndex constructs a fresh BM25 index over every record's search text.
// The index is rebuilt wholesale; there is no incremental mutation.
func (c *Catalog) BuildIndex() *BM25Index {
	idx := NewBM25Index()
	for _, rec := range c.records {
		idx.AddDocument(rec.ID, rec.SearchText())
	}
	return idx
}
