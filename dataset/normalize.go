package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Candidate column names, checked in priority order. The first column that
// exists in the schema is resolved once per dataset, not per row.
var (
	dateCandidates   = []string{"payment_date", "order_date", "create_time", "created_at", "date"}
	amountCandidates = []string{"paid_amount", "product_amount", "amount", "total_amount"}
)

const (
	regionColumn    = "region"
	provinceColumn  = "province"
	quantityColumn  = "quantity"
	unitPriceColumn = "unit_price"
	productColumn   = "product_name"
	categoryColumn  = "category"
)

// Dataset is the normalized form of a Table: the original snapshot plus the
// derived semantic fields the charts aggregate over. It is built once per load
// and treated as immutable; filtering yields row-index views, never mutation.
type Dataset struct {
	Table *Table

	// Regions always has one entry per row; no row is left without a region.
	Regions []string

	Dates  []time.Time
	DateOK []bool

	Years    []int
	Months   []int
	Quarters []int

	Amounts  []float64
	AmountOK []bool

	Quantities []float64
	QuantityOK []bool

	// Availability of the optional metrics and dimensions for this session.
	HasDate     bool
	HasAmount   bool
	HasQuantity bool

	// DateColumn and AmountColumn are the resolved source columns.
	// AmountColumn is empty when the amount was computed as quantity×unit_price.
	DateColumn   string
	AmountColumn string

	// ProductColumn and CategoryColumn are set when the source carries them.
	ProductColumn  string
	CategoryColumn string
}

// Normalize derives the semantic fields from a raw table. Missing optional
// columns disable the dependent metric instead of failing; unparseable cells
// become absent values for their row.
func Normalize(t *Table) *Dataset {
	n := t.NumRows()
	ds := &Dataset{
		Table:      t,
		Regions:    make([]string, n),
		Dates:      make([]time.Time, n),
		DateOK:     make([]bool, n),
		Years:      make([]int, n),
		Months:     make([]int, n),
		Quarters:   make([]int, n),
		Amounts:    make([]float64, n),
		AmountOK:   make([]bool, n),
		Quantities: make([]float64, n),
		QuantityOK: make([]bool, n),
	}

	ds.resolveRegions()
	ds.resolveDates()
	ds.resolveQuantity()
	ds.resolveAmount()

	if t.HasColumn(productColumn) {
		ds.ProductColumn = productColumn
	}
	if t.HasColumn(categoryColumn) {
		ds.CategoryColumn = categoryColumn
	}

	return ds
}

// resolveRegions fills the region for every row. An existing region column is
// gap-filled from the province lookup; otherwise the whole column is derived
// from province. Anything unmapped resolves to RegionOther.
func (ds *Dataset) resolveRegions() {
	t := ds.Table
	hasRegion := t.HasColumn(regionColumn)
	hasProvince := t.HasColumn(provinceColumn)

	for i := range t.Rows {
		if hasRegion {
			if cell, _ := t.Cell(i, regionColumn); strings.TrimSpace(cell) != "" {
				ds.Regions[i] = strings.TrimSpace(cell)
				continue
			}
		}
		if hasProvince {
			cell, _ := t.Cell(i, provinceColumn)
			ds.Regions[i] = RegionForProvince(strings.TrimSpace(cell))
			continue
		}
		ds.Regions[i] = RegionOther
	}
}

// resolveDates picks the primary date column for the whole dataset and parses
// every cell independently. A parse failure leaves the row's date absent.
func (ds *Dataset) resolveDates() {
	col := firstExistingColumn(ds.Table, dateCandidates)
	if col == "" {
		return
	}
	ds.DateColumn = col
	ds.HasDate = true

	for i := range ds.Table.Rows {
		cell, _ := ds.Table.Cell(i, col)
		d, ok := parseDate(cell)
		if !ok {
			continue
		}
		ds.Dates[i] = d
		ds.DateOK[i] = true
		ds.Years[i] = d.Year()
		ds.Months[i] = int(d.Month())
		ds.Quarters[i] = (int(d.Month())-1)/3 + 1
	}
}

func (ds *Dataset) resolveQuantity() {
	if !ds.Table.HasColumn(quantityColumn) {
		return
	}
	ds.HasQuantity = true
	for i := range ds.Table.Rows {
		cell, _ := ds.Table.Cell(i, quantityColumn)
		if v, ok := parseNumber(cell); ok {
			ds.Quantities[i] = v
			ds.QuantityOK[i] = true
		}
	}
}

// resolveAmount applies the fixed-priority amount candidates, then falls back
// to quantity×unit_price when both columns exist. With neither, the amount
// metric is simply unavailable for the session.
func (ds *Dataset) resolveAmount() {
	if col := firstExistingColumn(ds.Table, amountCandidates); col != "" {
		ds.AmountColumn = col
		ds.HasAmount = true
		for i := range ds.Table.Rows {
			cell, _ := ds.Table.Cell(i, col)
			if v, ok := parseNumber(cell); ok {
				ds.Amounts[i] = v
				ds.AmountOK[i] = true
			}
		}
		return
	}

	if ds.Table.HasColumn(quantityColumn) && ds.Table.HasColumn(unitPriceColumn) {
		ds.HasAmount = true
		for i := range ds.Table.Rows {
			qCell, _ := ds.Table.Cell(i, quantityColumn)
			pCell, _ := ds.Table.Cell(i, unitPriceColumn)
			q, qok := parseNumber(qCell)
			p, pok := parseNumber(pCell)
			if qok && pok {
				ds.Amounts[i] = q * p
				ds.AmountOK[i] = true
			}
		}
	}
}

// NumRows returns the number of rows in the underlying table.
func (ds *Dataset) NumRows() int {
	return ds.Table.NumRows()
}

func firstExistingColumn(t *Table, candidates []string) string {
	for _, c := range candidates {
		if t.HasColumn(c) {
			return c
		}
	}
	return ""
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2006-01",
	"01-02-06 15:04",
	"1/2/06 15:04",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
