package charts

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpviz/analytics"
)

func TestRoseChartEqualSectors(t *testing.T) {
	buckets := []analytics.Bucket{
		{Key: "连衣裙", Value: 90},
		{Key: "T恤", Value: 60},
		{Key: "卫衣", Value: 30},
	}

	fig, err := RoseChart(buckets, analytics.MetricQuantity)
	require.NoError(t, err)

	assert.True(t, fig.Polar)
	require.Len(t, fig.Wedges, 3)

	want := 2 * math.Pi / 3
	for i, w := range fig.Wedges {
		assert.InDelta(t, want, w.Width, 1e-9)
		assert.InDelta(t, float64(i)*want, w.Theta, 1e-9)
		assert.InDelta(t, buckets[i].Value, w.Radius, 1e-9)
	}

	// Value ordering comes in by radius, not by sector size.
	assert.Greater(t, fig.Wedges[0].Radius, fig.Wedges[2].Radius)
	assert.InDelta(t, 90*1.1, fig.YMax, 1e-9)
	assert.Equal(t, "连衣裙", fig.XTicks[0].Text)
}

func TestRoseChartDistinctColorsAtLimit(t *testing.T) {
	buckets := make([]analytics.Bucket, analytics.RoseLimit)
	for i := range buckets {
		buckets[i] = analytics.Bucket{
			Key:   fmt.Sprintf("分类%d", i),
			Value: float64(120 - i*5),
		}
	}

	fig, err := RoseChart(buckets, analytics.MetricQuantity)
	require.NoError(t, err)

	require.Len(t, fig.Wedges, analytics.RoseLimit)
	assert.NotEqual(t, fig.Wedges[0].Fill, fig.Wedges[analytics.RoseLimit-1].Fill)
}

func TestRoseChartEmptyIsInsufficient(t *testing.T) {
	_, err := RoseChart(nil, analytics.MetricAmount)
	require.Error(t, err)
	assert.True(t, IsInsufficientData(err))
}
