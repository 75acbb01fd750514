package charts

import (
	"fmt"

	"erpviz/analytics"
)

// GradientLayers is the deterministic number of thin horizontal layers each
// regional column is built from. Fill intensity rises monotonically with
// layer position, producing a density gradient from base to top.
const GradientLayers = 100

const regionalBarWidth = 0.45

// RegionalBars renders the per-region totals as gradient-stacked columns and
// annotates the dominant region's share of the grand total.
func RegionalBars(buckets []analytics.Bucket) (*Figure, error) {
	if len(buckets) == 0 {
		return nil, &InsufficientDataError{Reason: "没有可用的区域数据"}
	}

	var maxVal, total float64
	for _, b := range buckets {
		total += b.Value
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}

	fig := &Figure{
		Kind:   "regional_gradient_bars",
		Title:  "各区域销量分布（渐变柱状图）",
		YLabel: "销售数量",
		XMin:   -0.5,
		XMax:   float64(len(buckets)) - 0.5,
		YMax:   maxVal * 1.15,
	}
	if total > 0 {
		top := buckets[0]
		fig.Subtitle = fmt.Sprintf("%s销量最多占比%.0f%%", top.Key, top.Value/total*100)
	}

	for i, b := range buckets {
		layerHeight := b.Value / GradientLayers
		for layer := 0; layer < GradientLayers; layer++ {
			ratio := float64(layer) / GradientLayers
			fig.Rects = append(fig.Rects, Rect{
				X:    float64(i) - regionalBarWidth/2,
				Y:    ratio * b.Value,
				W:    regionalBarWidth,
				H:    layerHeight,
				Fill: rampHex(bluesRamp, 0.4+ratio*0.55),
			})
		}
		fig.Labels = append(fig.Labels, Label{
			X:     float64(i),
			Y:     b.Value + maxVal*0.02,
			Text:  formatValue(b.Value),
			Align: "center",
			Size:  16,
			Color: "#ffffff",
		})
		fig.XTicks = append(fig.XTicks, Tick{Pos: float64(i), Text: b.Key})
	}

	return fig, nil
}
