package services

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"

	"erpviz/analytics"
	"erpviz/charts"
	"erpviz/dataset"
	apperrors "erpviz/server/errors"
)

// Chart kinds served by the API.
const (
	ChartRegional  = "regional"
	ChartTopN      = "top-products"
	ChartTrend     = "trend"
	ChartQuarterly = "quarterly"
	ChartRose      = "rose"
)

// maxOfferedProducts mirrors the original sidebar rule: the product filter is
// only offered when the dataset has a manageable number of distinct products.
const maxOfferedProducts = 50

// DatasetSummary describes a loaded dataset for the UI layer. Nil totals mean
// the metric is unavailable for the session.
type DatasetSummary struct {
	Rows          int      `json:"rows"`
	Columns       []string `json:"columns"`
	TotalAmount   *float64 `json:"total_amount,omitempty"`
	TotalQuantity *float64 `json:"total_quantity,omitempty"`
	HasDate       bool     `json:"has_date"`
	HasAmount     bool     `json:"has_amount"`
	HasQuantity   bool     `json:"has_quantity"`

	// Filter options. Products is omitted entirely when the dataset has no
	// product column or too many distinct products to offer a picker.
	Years    []int    `json:"years"`
	Regions  []string `json:"regions"`
	Products []string `json:"products,omitempty"`
}

// AnalyticsService orchestrates filter → aggregate → transform per chart
// request, with a per-session cache and deduplication of identical in-flight
// derivations.
type AnalyticsService struct {
	sessions *SessionService
	group    singleflight.Group
}

// NewAnalyticsService creates the orchestrator on top of a session registry.
func NewAnalyticsService(sessions *SessionService) *AnalyticsService {
	return &AnalyticsService{sessions: sessions}
}

// Summarize builds the dataset overview and filter options.
func (a *AnalyticsService) Summarize(sessionID string, sel dataset.Selection) (*DatasetSummary, error) {
	sess, err := a.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	ds, _ := sess.Dataset()

	view := ds.Filter(sel)
	amount, quantity := analytics.Totals(view)

	full := ds.FullView()
	summary := &DatasetSummary{
		Rows:          view.Len(),
		Columns:       ds.Table.Columns,
		TotalAmount:   amount,
		TotalQuantity: quantity,
		HasDate:       ds.HasDate,
		HasAmount:     ds.HasAmount,
		HasQuantity:   ds.HasQuantity,
		Years:         full.DistinctYears(),
		Regions:       full.DistinctRegions(),
	}
	if products := full.DistinctProducts(); len(products) > 0 && len(products) <= maxOfferedProducts {
		summary.Products = products
	}
	return summary, nil
}

// Chart derives the figure for one chart kind over the filtered view. The
// result is cached per (generation, chart, params, selection); an
// InsufficientDataError passes through to the caller untouched.
func (a *AnalyticsService) Chart(sessionID, kind string, sel dataset.Selection, topN int) (*charts.Figure, error) {
	sess, err := a.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	ds, generation := sess.Dataset()

	if kind == ChartTopN {
		topN = charts.ClampTopN(topN)
	} else {
		topN = 0
	}

	key := chartCacheKey(kind, topN, sel)
	if v, ok := sess.cached(generation, key); ok {
		return v.(*charts.Figure), nil
	}

	sfKey := fmt.Sprintf("%s/%d/%d", sessionID, generation, key)
	v, err, _ := a.group.Do(sfKey, func() (interface{}, error) {
		fig, err := deriveChart(ds, kind, sel, topN)
		if err != nil {
			return nil, err
		}
		sess.store(generation, key, fig)
		return fig, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*charts.Figure), nil
}

// chartCacheKey hashes the chart kind, its parameters, and the canonical
// filter selection into a cache key.
func chartCacheKey(kind string, topN int, sel dataset.Selection) uint64 {
	return xxh3.HashString(kind + "\x1e" + strconv.Itoa(topN) + "\x1e" + sel.Canonical())
}

// deriveChart runs the full re-derivation for one chart: filter engine,
// aggregation engine, chart transform.
func deriveChart(ds *dataset.Dataset, kind string, sel dataset.Selection, topN int) (*charts.Figure, error) {
	view := ds.Filter(sel)

	switch kind {
	case ChartRegional:
		buckets, _, err := analytics.RegionTotals(view)
		if err != nil {
			return nil, insufficient(err, "没有可用的区域数据")
		}
		return charts.RegionalBars(buckets)

	case ChartTopN:
		buckets, metric, err := analytics.ProductTotals(view)
		if err != nil {
			return nil, insufficient(err, "数据中没有产品或类别列")
		}
		return charts.TopProductBars(buckets, metric, topN)

	case ChartTrend:
		points, metric, err := analytics.MonthlyTotals(view)
		if err != nil {
			return nil, insufficient(err, "数据中没有有效的日期列")
		}
		return charts.MonthlyTrend(points, metric)

	case ChartQuarterly:
		cells, metric, err := analytics.QuarterlyTotals(view)
		if err != nil {
			return nil, insufficient(err, "数据中没有季度信息")
		}
		return charts.QuarterlyBars(cells, metric)

	case ChartRose:
		buckets, metric, err := analytics.CategoryTotals(view)
		if err != nil {
			return nil, insufficient(err, "没有足够的数据绘制玫瑰图")
		}
		return charts.RoseChart(buckets, metric)
	}

	return nil, apperrors.NewValidationError("unknown chart kind: "+kind, nil)
}

// insufficient converts aggregation no-data signals into the chart layer's
// insufficient-data outcome with a descriptive reason.
func insufficient(err error, reason string) error {
	if errors.Is(err, analytics.ErrNoData) || errors.Is(err, analytics.ErrMissingDimension) {
		return &charts.InsufficientDataError{Reason: reason}
	}
	return apperrors.NewInternalError("aggregation failed", err)
}

// Export writes the filtered view as delimited text to w.
func (a *AnalyticsService) Export(sessionID string, sel dataset.Selection, w io.Writer) error {
	sess, err := a.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	ds, _ := sess.Dataset()
	if err := dataset.ExportCSV(w, ds.Filter(sel)); err != nil {
		return apperrors.NewInternalError("export failed", err)
	}
	return nil
}
