package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivoronin/catfilter/internal/filter"
)

const productsJSON = `[
  {"id": 1, "title": "Dune", "category": "Books", "price": 12.5, "on_sale": true},
  {"id": 2, "title": "Cola", "category": "Drinks", "price": 2}
]`

func TestLoadJSONArray(t *testing.T) {
	records, err := Load(strings.NewReader(productsJSON), FormatJSON)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Dune", records[0]["title"])
	assert.Equal(t, json.Number("12.5"), records[0]["price"])
	assert.Equal(t, true, records[0]["on_sale"])
}

func TestLoadJSONEnvelope(t *testing.T) {
	records, err := Load(strings.NewReader(`{"success": true, "data": `+productsJSON+`}`), FormatJSON)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadJSONEnvelopeWithoutSuccess(t *testing.T) {
	records, err := Load(strings.NewReader(`{"data": [{"id": 7}]}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, json.Number("7"), records[0]["id"])
}

func TestLoadJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unsuccessful envelope", `{"success": false, "data": []}`, ErrUnsuccessful},
		{"envelope without data", `{"success": true}`, nil},
		{"not an array", `"products"`, nil},
		{"array of scalars", `[1, 2]`, nil},
		{"broken json", `[{"id": 1`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), FormatJSON)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		records, err := Load(strings.NewReader("  \n"), format)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
}

func TestLoadYAML(t *testing.T) {
	input := `
- id: 1
  title: Dune
  category: Books
  price: 12.5
- id: 2
  title: Cola
  category: Drinks
  price: 2
`
	records, err := Load(strings.NewReader(input), FormatYAML)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Cola", records[1]["title"])

	got := filter.FilterRecords(records, filter.Parse("price >= 10"))
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0]["title"])
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("products.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("products.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("products.json"))
	assert.Equal(t, FormatJSON, FormatForPath("products"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte(productsJSON), 0o600))

	records, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	got := filter.FilterRecords(records, filter.Parse("category = Books\nprice >= 10"))
	require.Len(t, got, 1)
	assert.Equal(t, json.Number("1"), got[0]["id"])

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadFileDashIsAPath(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadFile("-")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile("-", []byte(`[{"id": 1}]`), 0o600))
	records, err := LoadFile("-")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
