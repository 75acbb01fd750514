package charts

import (
	"fmt"

	"erpviz/analytics"
)

// Bounds for the caller-chosen ranking size.
const (
	MinTopN     = 5
	MaxTopN     = 50
	DefaultTopN = 10
)

// ClampTopN normalizes a requested N into the allowed range. Zero and
// negative values fall back to the default rather than erroring, so a display
// parameter can never fail a request.
func ClampTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	if n < MinTopN {
		return MinTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

// TopProductBars renders the N largest products as horizontal bars with a
// perceptually ordered color ramp and a value label past each bar's end.
// Buckets must already be sorted descending.
func TopProductBars(buckets []analytics.Bucket, metric analytics.Metric, n int) (*Figure, error) {
	if len(buckets) == 0 {
		return nil, &InsufficientDataError{Reason: "数据中没有产品或类别数据"}
	}

	n = ClampTopN(n)
	if n > len(buckets) {
		n = len(buckets)
	}
	top := buckets[:n]

	var maxVal float64
	for _, b := range top {
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}

	fig := &Figure{
		Kind:   "top_product_bars",
		Title:  fmt.Sprintf("Top %d 产品销量排行", n),
		XLabel: metric.Label(),
		XMax:   maxVal * 1.1,
		YMin:   -0.5,
		YMax:   float64(n) - 0.5,
	}

	for i, b := range top {
		t := 0.3
		if n > 1 {
			t = 0.3 + 0.6*float64(i)/float64(n-1)
		}
		fig.Rects = append(fig.Rects, Rect{
			X:    0,
			Y:    float64(i) - 0.4,
			W:    b.Value,
			H:    0.8,
			Fill: rampHex(viridisRamp, t),
		})
		fig.Labels = append(fig.Labels, Label{
			X:     b.Value + maxVal*0.01,
			Y:     float64(i),
			Text:  formatValue(b.Value),
			Align: "left",
			Size:  11,
			Color: "#ffffff",
		})
		fig.YTicks = append(fig.YTicks, Tick{Pos: float64(i), Text: b.Key})
	}

	return fig, nil
}
