package charts

import (
	"strconv"

	"erpviz/analytics"
)

// QuarterlyBars renders one cluster of bars per quarter tick, one bar per
// year, offset symmetrically around the tick. Zero-value (year, quarter)
// combinations render as zero-height bars so the grid stays rectangular
// across all years and all four quarters.
func QuarterlyBars(cells []analytics.QuarterCell, metric analytics.Metric) (*Figure, error) {
	if len(cells) == 0 {
		return nil, &InsufficientDataError{Reason: "没有可用的年度数据"}
	}

	years := make([]int, 0)
	byYear := map[int][4]float64{}
	for _, c := range cells {
		vals, seen := byYear[c.Year]
		if !seen {
			years = append(years, c.Year)
		}
		if c.Quarter >= 1 && c.Quarter <= 4 {
			vals[c.Quarter-1] = c.Value
		}
		byYear[c.Year] = vals
	}

	var maxVal float64
	for _, c := range cells {
		if c.Value > maxVal {
			maxVal = c.Value
		}
	}

	width := 0.4
	if len(years) > 1 {
		width = 0.8 / float64(len(years))
	}

	fig := &Figure{
		Kind:   "quarterly_comparison",
		Title:  "季度销售对比",
		YLabel: metric.Label(),
		XMin:   -0.5,
		XMax:   3.5,
		YMax:   maxVal * 1.15,
	}

	for i, year := range years {
		color := quarterColors[i%len(quarterColors)]
		fig.Legend = append(fig.Legend, LegendEntry{Label: strconv.Itoa(year), Color: color})

		offset := 0.0
		if len(years) > 1 {
			offset = (float64(i) - float64(len(years))/2 + 0.5) * width
		}

		vals := byYear[year]
		for q := 0; q < 4; q++ {
			center := float64(q) + offset
			fig.Rects = append(fig.Rects, Rect{
				X:    center - width/2,
				Y:    0,
				W:    width,
				H:    vals[q],
				Fill: color,
			})
			if vals[q] > 0 {
				fig.Labels = append(fig.Labels, Label{
					X:     center,
					Y:     vals[q],
					Text:  formatValue(vals[q]),
					Align: "center",
					Size:  9,
					Color: "#ffffff",
				})
			}
		}
	}

	for q := 0; q < 4; q++ {
		fig.XTicks = append(fig.XTicks, Tick{Pos: float64(q), Text: "Q" + strconv.Itoa(q+1)})
	}

	return fig, nil
}
