package charts

import (
	"math"

	"erpviz/analytics"
)

// RoseChart renders the top categories as a polar (Nightingale rose) chart:
// every category occupies an equal angular sector of 2π/n and the wedge
// radius encodes its aggregate value. Buckets must already be truncated to
// the rose limit by the aggregation engine.
func RoseChart(buckets []analytics.Bucket, metric analytics.Metric) (*Figure, error) {
	if len(buckets) == 0 {
		return nil, &InsufficientDataError{Reason: "没有足够的数据绘制玫瑰图"}
	}

	n := len(buckets)
	width := 2 * math.Pi / float64(n)

	var maxVal float64
	for _, b := range buckets {
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}

	fig := &Figure{
		Kind:   "rose",
		Title:  "分类销量南丁格尔玫瑰图",
		YLabel: metric.Label(),
		Polar:  true,
		XMax:   2 * math.Pi,
		YMax:   maxVal * 1.1,
	}

	for i, b := range buckets {
		theta := float64(i) * width
		t := 0.1
		if n > 1 {
			t = 0.1 + 0.8*float64(i)/float64(n-1)
		}
		fig.Wedges = append(fig.Wedges, Wedge{
			Theta:  theta,
			Width:  width,
			Radius: b.Value,
			Fill:   rampHex(spectralRamp, t),
		})
		fig.XTicks = append(fig.XTicks, Tick{Pos: theta, Text: b.Key})
	}

	return fig, nil
}
