package dataset

import (
	"sort"
	"strconv"
	"strings"
)

// Selection holds the user-chosen values per filterable dimension. An empty
// set for a dimension means "no restriction", not "exclude everything".
type Selection struct {
	Years    []int    `json:"years"`
	Regions  []string `json:"regions"`
	Products []string `json:"products"`
}

// Canonical returns a stable textual form of the selection, used as part of
// derivation cache keys. Order of values within a dimension does not matter.
func (s Selection) Canonical() string {
	years := make([]int, len(s.Years))
	copy(years, s.Years)
	sort.Ints(years)
	regions := make([]string, len(s.Regions))
	copy(regions, s.Regions)
	sort.Strings(regions)
	products := make([]string, len(s.Products))
	copy(products, s.Products)
	sort.Strings(products)

	var b strings.Builder
	for _, y := range years {
		b.WriteString(strconv.Itoa(y))
		b.WriteByte(',')
	}
	b.WriteByte('\x1f')
	for _, r := range regions {
		b.WriteString(r)
		b.WriteByte(',')
	}
	b.WriteByte('\x1f')
	for _, p := range products {
		b.WriteString(p)
		b.WriteByte(',')
	}
	return b.String()
}

// View is a read-only subset of a dataset's rows. Views never copy or mutate
// the normalized base.
type View struct {
	ds   *Dataset
	rows []int
}

// Filter applies the selection with AND semantics across dimensions. The
// predicates are commutative, so repeated filtering is idempotent. Dimensions
// the dataset does not carry are silently skipped.
func (ds *Dataset) Filter(sel Selection) View {
	yearSet := make(map[int]struct{}, len(sel.Years))
	for _, y := range sel.Years {
		yearSet[y] = struct{}{}
	}
	regionSet := make(map[string]struct{}, len(sel.Regions))
	for _, r := range sel.Regions {
		regionSet[r] = struct{}{}
	}
	productSet := make(map[string]struct{}, len(sel.Products))
	for _, p := range sel.Products {
		productSet[p] = struct{}{}
	}

	filterYears := len(yearSet) > 0 && ds.HasDate
	filterProducts := len(productSet) > 0 && ds.ProductColumn != ""

	rows := make([]int, 0, ds.NumRows())
	for i := 0; i < ds.NumRows(); i++ {
		if filterYears {
			if !ds.DateOK[i] {
				continue
			}
			if _, ok := yearSet[ds.Years[i]]; !ok {
				continue
			}
		}
		if len(regionSet) > 0 {
			if _, ok := regionSet[ds.Regions[i]]; !ok {
				continue
			}
		}
		if filterProducts {
			cell, _ := ds.Table.Cell(i, ds.ProductColumn)
			if _, ok := productSet[cell]; !ok {
				continue
			}
		}
		rows = append(rows, i)
	}

	return View{ds: ds, rows: rows}
}

// FullView returns a view over every row of the dataset.
func (ds *Dataset) FullView() View {
	return ds.Filter(Selection{})
}

// Dataset returns the normalized base the view was derived from.
func (v View) Dataset() *Dataset {
	return v.ds
}

// Len returns the number of rows in the view.
func (v View) Len() int {
	return len(v.rows)
}

// Rows returns the base-dataset row indices in the view.
func (v View) Rows() []int {
	return v.rows
}

// DistinctYears returns the sorted distinct years of rows with a parsed date.
func (v View) DistinctYears() []int {
	seen := map[int]struct{}{}
	for _, i := range v.rows {
		if v.ds.DateOK[i] {
			seen[v.ds.Years[i]] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// DistinctRegions returns the sorted distinct regions in the view.
func (v View) DistinctRegions() []string {
	seen := map[string]struct{}{}
	for _, i := range v.rows {
		seen[v.ds.Regions[i]] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// DistinctProducts returns the sorted distinct product names, or nil when the
// dataset has no product column.
func (v View) DistinctProducts() []string {
	if v.ds.ProductColumn == "" {
		return nil
	}
	seen := map[string]struct{}{}
	for _, i := range v.rows {
		cell, _ := v.ds.Table.Cell(i, v.ds.ProductColumn)
		if strings.TrimSpace(cell) != "" {
			seen[cell] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
