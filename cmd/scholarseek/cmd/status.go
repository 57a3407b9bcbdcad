package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidyarthi-io/scholarseek/internal/config"
	"github.com/vidyarthi-io/scholarseek/internal/logging"
	"github.com/vidyarthi-io/scholarseek/internal/store"
	"github.com/vidyarthi-io/scholarseek/internal/vector"
)

// statusInfo summarizes the configured dataset and pipeline for display.
type statusInfo struct {
	DatasetPath   string  `json:"dataset_path"`
	Records       int     `json:"records"`
	IndexedDocs   int     `json:"indexed_documents"`
	IndexedTerms  int     `json:"indexed_terms"`
	AvgDocLength  float64 `json:"avg_doc_length"`
	RetrievalMode string  `json:"retrieval_mode"`
	VectorDims    int     `json:"vector_dimensions,omitempty"`
	VectorCount   int     `json:"vector_count,omitempty"`
	MemoryEnabled bool    `json:"memory_enabled"`
	MemoryDBPath  string  `json:"memory_db_path,omitempty"`
	CacheTTLSecs  int     `json:"cache_ttl_seconds"`
	CacheMax      int     `json:"cache_max_entries"`
	LogPath       string  `json:"log_path"`
}

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show dataset and pipeline status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runStatus(cmd *cobra.Command, jsonOutput bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	catalog, err := store.LoadCatalog(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	stats := catalog.BuildIndex().Stats()

	info := statusInfo{
		DatasetPath:   cfg.Dataset.Path,
		Records:       catalog.Len(),
		IndexedDocs:   stats.DocumentCount,
		IndexedTerms:  stats.TermCount,
		AvgDocLength:  stats.AvgDocLength,
		RetrievalMode: "lexical",
		MemoryEnabled: cfg.Memory.Enabled,
		CacheTTLSecs:  cfg.Search.CacheTTLSeconds,
		CacheMax:      cfg.Search.CacheMaxEntries,
		LogPath:       logging.DefaultLogPath(),
	}
	if cfg.Memory.Enabled {
		info.MemoryDBPath = cfg.Memory.DBPath
	}

	if cfg.Vector.Enabled {
		provider, perr := vector.NewHNSWProvider(catalog, vector.Config{
			Dimensions:     cfg.Vector.Dimensions,
			QueryCacheSize: cfg.Vector.QueryCacheSize,
		})
		if perr == nil {
			info.RetrievalMode = "hybrid"
			info.VectorDims = cfg.Vector.Dimensions
			info.VectorCount = provider.Count()
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "Dataset:   %s (%d records)\n", info.DatasetPath, info.Records)
	fmt.Fprintf(out, "Index:     %d documents, %d terms, avg length %.1f\n",
		info.IndexedDocs, info.IndexedTerms, info.AvgDocLength)
	fmt.Fprintf(out, "Retrieval: %s", info.RetrievalMode)
	if info.RetrievalMode == "hybrid" {
		fmt.Fprintf(out, " (%d vectors, %d dims)", info.VectorCount, info.VectorDims)
	}
	fmt.Fprintln(out)
	if info.MemoryEnabled {
		fmt.Fprintf(out, "Memory:    enabled (%s)\n", info.MemoryDBPath)
	} else {
		fmt.Fprintln(out, "Memory:    disabled")
	}
	fmt.Fprintf(out, "Cache:     TTL %ds, max %d entries\n", info.CacheTTLSecs, info.CacheMax)
	fmt.Fprintf(out, "Logs:      %s\n", info.LogPath)
	return nil
}
