package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpviz/charts"
	"erpviz/dataset"
)

func TestSummarize(t *testing.T) {
	sessions := NewSessionService(4)
	svc := NewAnalyticsService(sessions)
	sess := sessions.Create(testDataset(t))

	summary, err := svc.Summarize(sess.ID, dataset.Selection{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Rows)
	assert.True(t, summary.HasDate)
	assert.True(t, summary.HasAmount)
	assert.True(t, summary.HasQuantity)
	require.NotNil(t, summary.TotalAmount)
	assert.InDelta(t, 199+299+459, *summary.TotalAmount, 1e-9)
	require.NotNil(t, summary.TotalQuantity)
	assert.InDelta(t, 6, *summary.TotalQuantity, 1e-9)

	assert.Equal(t, []int{2023, 2024}, summary.Years)
	assert.Contains(t, summary.Regions, "华南")
	assert.Contains(t, summary.Regions, "华北")
	assert.Equal(t, []string{"T恤", "卫衣", "连衣裙"}, summary.Products)
}

func TestSummarizeFilteredTotals(t *testing.T) {
	sessions := NewSessionService(4)
	svc := NewAnalyticsService(sessions)
	sess := sessions.Create(testDataset(t))

	summary, err := svc.Summarize(sess.ID, dataset.Selection{Years: []int{2024}})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Rows)
	require.NotNil(t, summary.TotalAmount)
	assert.InDelta(t, 199+299, *summary.TotalAmount, 1e-9)
	// Filter options always describe the full dataset, not the filtered view.
	assert.Equal(t, []int{2023, 2024}, summary.Years)
}

func TestChartCachesPerSelection(t *testing.T) {
	sessions := NewSessionService(4)
	svc := NewAnalyticsService(sessions)
	sess := sessions.Create(testDataset(t))

	fig, err := svc.Chart(sess.ID, ChartRegional, dataset.Selection{}, 0)
	require.NoError(t, err)
	require.NotNil(t, fig)

	again, err := svc.Chart(sess.ID, ChartRegional, dataset.Selection{}, 0)
	require.NoError(t, err)
	assert.Same(t, fig, again, "identical request should hit the session cache")

	other, err := svc.Chart(sess.ID, ChartRegional, dataset.Selection{Years: []int{2024}}, 0)
	require.NoError(t, err)
	assert.NotSame(t, fig, other, "different selection must re-derive")
}

func TestChartCacheInvalidatedByReload(t *testing.T) {
	sessions := NewSessionService(4)
	svc := NewAnalyticsService(sessions)
	sess := sessions.Create(testDataset(t))

	fig, err := svc.Chart(sess.ID, ChartRegional, dataset.Selection{}, 0)
	require.NoError(t, err)

	require.NoError(t, sessions.Replace(sess.ID, testDataset(t)))

	after, err := svc.Chart(sess.ID, ChartRegional, dataset.Selection{}, 0)
	require.NoError(t, err)
	assert.NotSame(t, fig, after)
}

func TestChartTopNClampedIntoCacheKey(t *testing.T) {
	sessions := NewSessionService(4)
	svc := NewAnalyticsService(sessions)
	sess := sessions.Create(testDataset(t))

	// 0 and a negative request both normalize to the default ranking size, so
	// they share one cached figure.
	fig, err := svc.Chart(sess.ID, ChartTopN, dataset.Selection{}, 0)
	require.NoError(t, err)
	again, err := svc.Chart(sess.ID, ChartTopN, dataset.Selection{}, -3)
	require.NoError(t, err)
	assert.Same(t, fig, again)
}

func TestChartUnknownKind(t *testing.T) {
	sessions := NewSessionService(4)
	svc := NewAnalyticsService(sessions)
	sess := sessions.Create(testDataset(t))

	_, err := svc.Chart(sess.ID, "pie", dataset.Selection{}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chart kind")
}

func TestChartInsufficientDataPassesThrough(t *testing.T) {
	sessions := NewSessionService(4)
	svc := NewAnalyticsService(sessions)
	sess := sessions.Create(testDataset(t))

	// A selection matching nothing empties every aggregate.
	_, err := svc.Chart(sess.ID, ChartRegional, dataset.Selection{Years: []int{1999}}, 0)
	require.Error(t, err)
	assert.True(t, charts.IsInsufficientData(err))
}

func TestExportWritesCSV(t *testing.T) {
	sessions := NewSessionService(4)
	svc := NewAnalyticsService(sessions)
	sess := sessions.Create(testDataset(t))

	var buf bytes.Buffer
	require.NoError(t, svc.Export(sess.ID, dataset.Selection{Years: []int{2024}}, &buf))

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, out, "T恤")
	assert.NotContains(t, out, "连衣裙", "rows outside the year filter stay out of the export")
}

func TestChartUnknownSession(t *testing.T) {
	svc := NewAnalyticsService(NewSessionService(4))
	_, err := svc.Chart("missing", ChartRegional, dataset.Selection{}, 0)
	assert.Error(t, err)
}
