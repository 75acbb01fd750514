package charts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpviz/analytics"
)

func TestClampTopN(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, DefaultTopN},
		{-7, DefaultTopN},
		{3, MinTopN},
		{5, 5},
		{10, 10},
		{50, 50},
		{99, MaxTopN},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClampTopN(c.in), "ClampTopN(%d)", c.in)
	}
}

func TestTopProductBarsTruncates(t *testing.T) {
	buckets := make([]analytics.Bucket, 20)
	for i := range buckets {
		buckets[i] = analytics.Bucket{
			Key:   fmt.Sprintf("产品%02d", i),
			Value: float64(200 - i*10),
		}
	}

	fig, err := TopProductBars(buckets, analytics.MetricQuantity, 10)
	require.NoError(t, err)

	require.Len(t, fig.Rects, 10)
	require.Len(t, fig.YTicks, 10)
	assert.Equal(t, "Top 10 产品销量排行", fig.Title)
	assert.Equal(t, "销量", fig.XLabel)

	// Bars keep the incoming descending order, first entry on tick row 0.
	assert.Equal(t, "产品00", fig.YTicks[0].Text)
	assert.InDelta(t, 200, fig.Rects[0].W, 1e-9)
	assert.InDelta(t, 110, fig.Rects[9].W, 1e-9)

	// Value labels sit just past the bar end, offset by 1% of the maximum.
	assert.InDelta(t, 200+200*0.01, fig.Labels[0].X, 1e-9)
	assert.Equal(t, "left", fig.Labels[0].Align)
}

func TestTopProductBarsFewerThanN(t *testing.T) {
	buckets := []analytics.Bucket{
		{Key: "T恤", Value: 40},
		{Key: "卫衣", Value: 25},
	}

	fig, err := TopProductBars(buckets, analytics.MetricAmount, 10)
	require.NoError(t, err)

	assert.Len(t, fig.Rects, 2)
	assert.Equal(t, "Top 2 产品销量排行", fig.Title)
	assert.Equal(t, "销售额", fig.XLabel)
	// The two bars get distinct ramp positions even with a short list.
	assert.NotEqual(t, fig.Rects[0].Fill, fig.Rects[1].Fill)
}

func TestTopProductBarsEmptyIsInsufficient(t *testing.T) {
	_, err := TopProductBars(nil, analytics.MetricQuantity, 10)
	require.Error(t, err)
	assert.True(t, IsInsufficientData(err))
}
