package charts

import (
	"github.com/aclements/go-moremath/vec"

	"erpviz/analytics"
)

// trendSamples is the fixed sampling resolution of the smoothed curve.
const trendSamples = 300

// MonthlyTrend renders the month-by-month totals as a line with discrete
// markers. With more than three buckets the line is a natural cubic spline
// through the points sampled at trendSamples positions; the true monthly
// points stay marked and labeled on top of the curve. Fewer than two buckets
// is an insufficient-data outcome.
func MonthlyTrend(points []analytics.MonthBucket, metric analytics.Metric) (*Figure, error) {
	if len(points) < 2 {
		return nil, &InsufficientDataError{Reason: "数据点不足，无法绘制趋势图"}
	}

	n := len(points)
	xs := make([]float64, n)
	ys := make([]float64, n)
	var maxVal float64
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Value
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	fig := &Figure{
		Kind:   "monthly_trend",
		Title:  "月度销售趋势",
		YLabel: metric.Label(),
		XMin:   -0.5,
		XMax:   float64(n-1) + 0.5,
		YMax:   maxVal * 1.15,
	}

	line := Polyline{Color: "#4edbbf", Width: 3}
	if n > 3 {
		// Display smoothing only: the spline interpolates the buckets, it
		// does not resample the underlying data.
		spline := newCubicSpline(xs, ys)
		sampleXs := vec.Linspace(0, float64(n-1), trendSamples)
		sampleYs := vec.Map(spline.at, sampleXs)
		line.Points = make([]Point, trendSamples)
		for i := range sampleXs {
			line.Points[i] = Point{X: sampleXs[i], Y: sampleYs[i]}
		}
	} else {
		line.Points = make([]Point, n)
		for i := range xs {
			line.Points[i] = Point{X: xs[i], Y: ys[i]}
		}
	}
	fig.Polylines = append(fig.Polylines, line)

	for i := range points {
		fig.Markers = append(fig.Markers, Marker{
			X:      xs[i],
			Y:      ys[i],
			Radius: 5,
			Fill:   "#ff6b6b",
			Stroke: "#ffffff",
		})
		fig.Labels = append(fig.Labels, Label{
			X:     xs[i],
			Y:     ys[i] + maxVal*0.03,
			Text:  formatValue(ys[i]),
			Align: "center",
			Size:  10,
			Color: "#ffffff",
		})
	}

	// Thin the month ticks so at most twelve remain readable.
	step := (n + 11) / 12
	for i := 0; i < n; i += step {
		fig.XTicks = append(fig.XTicks, Tick{Pos: xs[i], Text: points[i].Label()})
	}

	return fig, nil
}
