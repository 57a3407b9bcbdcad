package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyarthi-io/scholarseek/internal/search"
)

const testDataset = `
- id: eng-sc
  name: SC Engineering Scholarship
  provider: Ministry of Social Justice
  provider_type: government
  description: engineering scholarship for SC students
  category: [SC]
  max_income: 250000
  education_levels: [Undergraduate]
  deadline: "2030-12-31"
  gender: All
- id: merit
  name: National Merit Scholarship
  provider: National Trust
  description: merit scholarship for all students
  trust_score: 0.9
  gender: All
`

// setupDataset writes a two-record dataset and points the CLI at it via
// environment overrides, with the optional collaborators off.
func setupDataset(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scholarships.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))

	t.Setenv("SCHOLARSEEK_DATASET", path)
	t.Setenv("SCHOLARSEEK_VECTOR_ENABLED", "false")
	t.Setenv("SCHOLARSEEK_MEMORY_ENABLED", "false")
}

func TestSearchCmd_JSON(t *testing.T) {
	setupDataset(t)

	out, err := execute(t,
		"search", "engineering scholarship",
		"--category", "SC", "--income", "200000", "--education", "undergraduate",
		"--top-k", "5", "--json")
	require.NoError(t, err)

	var resp search.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "eng-sc", resp.Results[0].ID)
	assert.Equal(t, 100, resp.Results[0].MatchScore)
	assert.Len(t, resp.Results[0].MatchReasons, 7)
}

func TestSearchCmd_TextOutput(t *testing.T) {
	setupDataset(t)

	out, err := execute(t, "search", "merit scholarship")
	require.NoError(t, err)
	assert.Contains(t, out, "National Merit Scholarship")
	assert.Contains(t, out, "Match ")
}

func TestSearchCmd_RejectsEmptyQuery(t *testing.T) {
	setupDataset(t)

	_, err := execute(t, "search", "   ")
	require.Error(t, err)
}

func TestBrowseCmd_CatalogOrder(t *testing.T) {
	setupDataset(t)

	out, err := execute(t, "browse", "--json")
	require.NoError(t, err)

	var resp search.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "eng-sc", resp.Results[0].ID)
	assert.Equal(t, "merit", resp.Results[1].ID)
}

func TestStatusCmd_JSON(t *testing.T) {
	setupDataset(t)

	out, err := execute(t, "status", "--json")
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.EqualValues(t, 2, info["records"])
	assert.Equal(t, "lexical", info["retrieval_mode"])
}

func TestInteractCmd_LogAndHistory(t *testing.T) {
	setupDataset(t)
	t.Setenv("SCHOLARSEEK_MEMORY_ENABLED", "true")
	t.Setenv("SCHOLARSEEK_MEMORY_DB", filepath.Join(t.TempDir(), "interactions.db"))

	out, err := execute(t,
		"interact", "log", "shortlist", "eng-sc",
		"--name", "SC Engineering Scholarship", "--category", "SC")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded shortlist of eng-sc")

	out, err = execute(t, "interact", "history", "--category", "SC")
	require.NoError(t, err)
	assert.Contains(t, out, "eng-sc")
	assert.Contains(t, out, "shortlist")
}

func TestInteractCmd_DisabledMemoryFails(t *testing.T) {
	setupDataset(t)

	_, err := execute(t, "interact", "log", "click", "eng-sc")
	require.Error(t, err)
}
