package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finparse/stmt-ledger/internal/models"
)

func TestStoreProfileRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	profile := &models.TemplateProfile{
		Headers:        []string{"Date", "Narration", "Amount"},
		ColumnTypes:    []models.ColumnType{models.ColumnDate, models.ColumnText, models.ColumnAmount},
		SampleRows:     [][]string{{"07/05/2025", "UPI", "100.00"}},
		RowCount:       42,
		HeaderRowIndex: 1,
		TextMarkers:    []string{"hdfc", "statement"},
	}

	require.NoError(t, store.SaveProfile("hdfc-savings", profile))

	loaded, err := store.LoadProfile("hdfc-savings")
	require.NoError(t, err)
	assert.Equal(t, profile, loaded)
}

func TestStoreMappingRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	mapping := models.TemplateMapping{
		models.FieldDate:      {Source: "col_0", Format: "DD/MM/YYYY"},
		models.FieldNarration: {Source: "col_1"},
		models.FieldAmount:    {Source: "col_2"},
	}

	require.NoError(t, store.SaveMapping("generic-card", mapping))

	loaded, err := store.LoadMapping("generic-card")
	require.NoError(t, err)
	assert.Equal(t, mapping, loaded)
}

func TestStoreLoadMappingFromJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "handwritten.json")
	payload := `{"date": {"source": "col_0", "format": "DD/MM/YYYY"}, "narration": {"source": "col_1"}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0600))

	store := NewStore(dir)
	mapping, err := store.LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, "col_0", mapping[models.FieldDate].Source)
	assert.Equal(t, "DD/MM/YYYY", mapping[models.FieldDate].Format)
}

func TestStoreResolveExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elsewhere.yaml")
	require.NoError(t, os.WriteFile(path, []byte("date:\n  source: col_0\n"), 0600))

	store := NewStore(filepath.Join(dir, "templates"))
	resolved, err := store.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestStoreResolveMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Resolve("nope")
	assert.Error(t, err)
}

func TestStoreLoadMappingEmptyFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte("{}\n"), 0600))

	store := NewStore(dir)
	_, err := store.LoadMapping("empty")
	assert.Error(t, err)
}

func TestStoreList(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.SaveMapping("beta", models.TemplateMapping{"date": {Source: "col_0"}}))
	require.NoError(t, store.SaveMapping("alpha", models.TemplateMapping{"date": {Source: "col_0"}}))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestStoreListMissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}
