package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpviz/analytics"
)

func TestQuarterlyBarsTwoYears(t *testing.T) {
	cells := []analytics.QuarterCell{
		{Year: 2023, Quarter: 1, Value: 100},
		{Year: 2023, Quarter: 2, Value: 0},
		{Year: 2023, Quarter: 3, Value: 80},
		{Year: 2023, Quarter: 4, Value: 60},
		{Year: 2024, Quarter: 1, Value: 120},
		{Year: 2024, Quarter: 2, Value: 90},
		{Year: 2024, Quarter: 3, Value: 0},
		{Year: 2024, Quarter: 4, Value: 0},
	}

	fig, err := QuarterlyBars(cells, analytics.MetricAmount)
	require.NoError(t, err)

	// Rectangular grid: one bar per year per quarter, zero-height included.
	require.Len(t, fig.Rects, 8)
	require.Len(t, fig.Legend, 2)
	assert.Equal(t, "2023", fig.Legend[0].Label)
	assert.Equal(t, "2024", fig.Legend[1].Label)
	assert.NotEqual(t, fig.Legend[0].Color, fig.Legend[1].Color)

	for _, r := range fig.Rects {
		assert.InDelta(t, 0.4, r.W, 1e-9)
		assert.InDelta(t, 0, r.Y, 1e-9)
	}
	// 2023 cluster sits left of the tick, 2024 right; mirrored offsets.
	assert.InDelta(t, -0.2, fig.Rects[0].X+0.4/2, 1e-9)
	assert.InDelta(t, 0.2, fig.Rects[4].X+0.4/2, 1e-9)

	// Zero-value bars carry no label.
	assert.Len(t, fig.Labels, 5)

	require.Len(t, fig.XTicks, 4)
	assert.Equal(t, "Q1", fig.XTicks[0].Text)
	assert.Equal(t, "Q4", fig.XTicks[3].Text)
}

func TestQuarterlyBarsSingleYearCentered(t *testing.T) {
	cells := []analytics.QuarterCell{
		{Year: 2024, Quarter: 1, Value: 10},
		{Year: 2024, Quarter: 2, Value: 20},
		{Year: 2024, Quarter: 3, Value: 30},
		{Year: 2024, Quarter: 4, Value: 40},
	}

	fig, err := QuarterlyBars(cells, analytics.MetricQuantity)
	require.NoError(t, err)

	require.Len(t, fig.Rects, 4)
	for q, r := range fig.Rects {
		assert.InDelta(t, 0.4, r.W, 1e-9)
		// A single year sits centered on its quarter tick.
		assert.InDelta(t, float64(q), r.X+r.W/2, 1e-9)
	}
	assert.Len(t, fig.Labels, 4)
}

func TestQuarterlyBarsEmptyIsInsufficient(t *testing.T) {
	_, err := QuarterlyBars(nil, analytics.MetricAmount)
	require.Error(t, err)
	assert.True(t, IsInsufficientData(err))
}
