// Package analytics computes grouped sums and counts over filtered dataset
// views. Every function returns an explicit no-data signal instead of an
// empty-but-valid table so the chart layer can branch on it.
package analytics

import (
	"errors"
	"sort"
	"strings"
	"time"

	"erpviz/dataset"
)

var (
	// ErrNoData means the grouped result has zero rows: the filter excluded
	// everything or the value field is entirely unavailable.
	ErrNoData = errors.New("no data to aggregate")

	// ErrMissingDimension means a grouping dimension the aggregate needs is
	// not present in the dataset.
	ErrMissingDimension = errors.New("required dimension not present")
)

// Metric identifies which value field an aggregate summed.
type Metric int

const (
	MetricNone Metric = iota
	MetricQuantity
	MetricAmount
)

// Label returns the display name of the metric.
func (m Metric) Label() string {
	switch m {
	case MetricQuantity:
		return "销量"
	case MetricAmount:
		return "销售额"
	}
	return ""
}

// RoseLimit caps the rose chart aggregate to keep the radial layout legible.
const RoseLimit = 12

// Bucket is one keyed row of an aggregate table.
type Bucket struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// MonthBucket is one calendar-month row of the trend aggregate.
type MonthBucket struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

// Label returns the year-month key, e.g. "2024-01".
func (b MonthBucket) Label() string {
	return time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// QuarterCell is one (year, quarter) cell of the quarterly aggregate. The
// quarterly table is always a complete cross of years × four quarters.
type QuarterCell struct {
	Year    int     `json:"year"`
	Quarter int     `json:"quarter"`
	Value   float64 `json:"value"`
}

// volumeMetric prefers quantity and falls back to amount. Used by the
// distribution charts (regional, top-product, rose), which answer "how many
// units".
func volumeMetric(ds *dataset.Dataset) Metric {
	if ds.HasQuantity {
		return MetricQuantity
	}
	if ds.HasAmount {
		return MetricAmount
	}
	return MetricNone
}

// revenueMetric prefers amount and falls back to quantity. Used by the
// temporal charts (trend, quarterly), which answer "how much revenue".
func revenueMetric(ds *dataset.Dataset) Metric {
	if ds.HasAmount {
		return MetricAmount
	}
	if ds.HasQuantity {
		return MetricQuantity
	}
	return MetricNone
}

// metricValue returns the metric's value for a row, absent when the cell
// failed to parse.
func metricValue(ds *dataset.Dataset, m Metric, row int) (float64, bool) {
	switch m {
	case MetricQuantity:
		return ds.Quantities[row], ds.QuantityOK[row]
	case MetricAmount:
		return ds.Amounts[row], ds.AmountOK[row]
	}
	return 0, false
}

// groupSum accumulates the metric per key. Rows with an absent key are
// skipped; rows with an absent value still count toward the group's row count.
func groupSum(v dataset.View, m Metric, key func(row int) (string, bool)) []Bucket {
	ds := v.Dataset()
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, i := range v.Rows() {
		k, ok := key(i)
		if !ok {
			continue
		}
		counts[k]++
		if val, ok := metricValue(ds, m, i); ok {
			sums[k] += val
		}
	}

	buckets := make([]Bucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, Bucket{Key: k, Value: sums[k], Count: c})
	}
	return buckets
}

// sortDesc orders buckets by value descending, tie-broken by key so the
// result is invariant under permutation of input rows.
func sortDesc(buckets []Bucket) {
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return buckets[i].Key < buckets[j].Key
	})
}

// RegionTotals sums the volume metric per region, sorted descending.
func RegionTotals(v dataset.View) ([]Bucket, Metric, error) {
	m := volumeMetric(v.Dataset())
	if m == MetricNone {
		return nil, MetricNone, ErrNoData
	}
	ds := v.Dataset()
	buckets := groupSum(v, m, func(row int) (string, bool) {
		return ds.Regions[row], true
	})
	if len(buckets) == 0 {
		return nil, m, ErrNoData
	}
	sortDesc(buckets)
	return buckets, m, nil
}

// ProductTotals sums the volume metric per product, falling back to the
// category column when the source has no product column. Sorted descending;
// truncation to the caller's N happens in the chart transform.
func ProductTotals(v dataset.View) ([]Bucket, Metric, error) {
	ds := v.Dataset()
	col := ds.ProductColumn
	if col == "" {
		col = ds.CategoryColumn
	}
	if col == "" {
		return nil, MetricNone, ErrMissingDimension
	}
	m := volumeMetric(ds)
	if m == MetricNone {
		return nil, MetricNone, ErrNoData
	}
	buckets := groupSum(v, m, func(row int) (string, bool) {
		cell, _ := ds.Table.Cell(row, col)
		cell = strings.TrimSpace(cell)
		return cell, cell != ""
	})
	if len(buckets) == 0 {
		return nil, m, ErrNoData
	}
	sortDesc(buckets)
	return buckets, m, nil
}

// MonthlyTotals sums the revenue metric per calendar month across the full
// date range present in the view, in chronological order.
func MonthlyTotals(v dataset.View) ([]MonthBucket, Metric, error) {
	ds := v.Dataset()
	if !ds.HasDate {
		return nil, MetricNone, ErrMissingDimension
	}
	m := revenueMetric(ds)
	if m == MetricNone {
		return nil, MetricNone, ErrNoData
	}

	type ym struct{ year, month int }
	sums := map[ym]float64{}
	seen := map[ym]bool{}
	for _, i := range v.Rows() {
		if !ds.DateOK[i] {
			continue
		}
		k := ym{ds.Years[i], ds.Months[i]}
		seen[k] = true
		if val, ok := metricValue(ds, m, i); ok {
			sums[k] += val
		}
	}
	if len(seen) == 0 {
		return nil, m, ErrNoData
	}

	buckets := make([]MonthBucket, 0, len(seen))
	for k := range seen {
		buckets = append(buckets, MonthBucket{Year: k.year, Month: k.month, Value: sums[k]})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		return buckets[i].Month < buckets[j].Month
	})
	return buckets, m, nil
}

// QuarterlyTotals sums the revenue metric per (year, quarter). The result is
// the complete cross of observed years × quarters 1..4, zero-filled for
// missing combinations and never truncated: exactly 4×len(years) cells,
// ordered by year then quarter.
func QuarterlyTotals(v dataset.View) ([]QuarterCell, Metric, error) {
	ds := v.Dataset()
	if !ds.HasDate {
		return nil, MetricNone, ErrMissingDimension
	}
	m := revenueMetric(ds)
	if m == MetricNone {
		return nil, MetricNone, ErrNoData
	}

	type yq struct{ year, quarter int }
	sums := map[yq]float64{}
	years := map[int]bool{}
	for _, i := range v.Rows() {
		if !ds.DateOK[i] {
			continue
		}
		years[ds.Years[i]] = true
		if val, ok := metricValue(ds, m, i); ok {
			sums[yq{ds.Years[i], ds.Quarters[i]}] += val
		}
	}
	if len(years) == 0 {
		return nil, m, ErrNoData
	}

	sorted := make([]int, 0, len(years))
	for y := range years {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	cells := make([]QuarterCell, 0, 4*len(sorted))
	for _, y := range sorted {
		for q := 1; q <= 4; q++ {
			cells = append(cells, QuarterCell{Year: y, Quarter: q, Value: sums[yq{y, q}]})
		}
	}
	return cells, m, nil
}

// CategoryTotals sums the volume metric per category, falling back to region
// when the source has no category column. Sorted descending and truncated to
// the top RoseLimit categories.
func CategoryTotals(v dataset.View) ([]Bucket, Metric, error) {
	ds := v.Dataset()
	m := volumeMetric(ds)
	if m == MetricNone {
		return nil, MetricNone, ErrNoData
	}

	var key func(row int) (string, bool)
	if ds.CategoryColumn != "" {
		key = func(row int) (string, bool) {
			cell, _ := ds.Table.Cell(row, ds.CategoryColumn)
			cell = strings.TrimSpace(cell)
			return cell, cell != ""
		}
	} else {
		key = func(row int) (string, bool) {
			return ds.Regions[row], true
		}
	}

	buckets := groupSum(v, m, key)
	if len(buckets) == 0 {
		return nil, m, ErrNoData
	}
	sortDesc(buckets)
	if len(buckets) > RoseLimit {
		buckets = buckets[:RoseLimit]
	}
	return buckets, m, nil
}

// Totals reports the view's grand totals for the dataset overview. A nil
// pointer means the metric is unavailable for the session.
func Totals(v dataset.View) (amount, quantity *float64) {
	ds := v.Dataset()
	if ds.HasAmount {
		var sum float64
		for _, i := range v.Rows() {
			if ds.AmountOK[i] {
				sum += ds.Amounts[i]
			}
		}
		amount = &sum
	}
	if ds.HasQuantity {
		var sum float64
		for _, i := range v.Rows() {
			if ds.QuantityOK[i] {
				sum += ds.Quantities[i]
			}
		}
		quantity = &sum
	}
	return amount, quantity
}
