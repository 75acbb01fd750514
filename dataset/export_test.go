package dataset

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 30, 9, 0, time.UTC)
	assert.Equal(t, "filtered_data_20240305_143009.csv", ExportFilename(now))
}

func TestExportCSVStartsWithBOM(t *testing.T) {
	ds := Normalize(NewTable([]string{"province"}, [][]string{{"北京"}}))

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, ds.FullView()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))
}

func TestExportCSVRoundTrip(t *testing.T) {
	columns := []string{"province", "product_name", "payment_date", "quantity", "unit_price"}
	rows := [][]string{
		{"广东省", "T恤", "2024-01-02 10:00:00", "2", "99.5"},
		{"北京", "卫衣", "bad", "1", "150"},
	}
	ds := Normalize(NewTable(columns, rows))

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, ds.FullView()))

	parsed, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, len(rows)+1)

	// Original columns come first and round-trip verbatim.
	header := parsed[0]
	require.GreaterOrEqual(t, len(header), len(columns))
	assert.Equal(t, columns, header[:len(columns)])
	for i, row := range rows {
		assert.Equal(t, row, parsed[i+1][:len(columns)])
	}

	// Derived columns are appended after the originals; quantity is skipped
	// because the source already carries a quantity column.
	derived := header[len(columns):]
	assert.Equal(t, []string{"region", "year", "month", "quarter", "amount"}, derived)

	// Spot-check derived cells: region mapping and the quantity×price amount.
	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}
	assert.Equal(t, "华南", parsed[1][idx["region"]])
	assert.Equal(t, "2024", parsed[1][idx["year"]])
	assert.Equal(t, "199", parsed[1][idx["amount"]])

	// Row with the unparseable date exports absent derived fields as blanks.
	assert.Equal(t, "", parsed[2][idx["year"]])
	assert.Equal(t, "华北", parsed[2][idx["region"]])
}

func TestExportCSVSkipsCollidingDerivedColumns(t *testing.T) {
	// The source already has a region column, so no derived region column is
	// appended and the original cells export untouched.
	columns := []string{"region", "province"}
	ds := Normalize(NewTable(columns, [][]string{{"", "广东省"}}))

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, ds.FullView()))

	parsed, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed[0], 2)
	assert.Equal(t, columns, parsed[0])
	assert.Equal(t, "", parsed[1][0])
}

func TestExportCSVRespectsFilter(t *testing.T) {
	ds := Normalize(NewTable([]string{"province"}, [][]string{{"广东省"}, {"北京"}}))

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, ds.Filter(Selection{Regions: []string{"华北"}})))

	content := strings.TrimPrefix(buf.String(), string(utf8BOM))
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "北京")
}
