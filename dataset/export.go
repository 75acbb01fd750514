package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Derived column names appended on export. A derived column is skipped when
// the source already carries a column of the same name, so every originally
// present column round-trips verbatim.
var derivedColumns = []string{"region", "year", "month", "quarter", "amount", "quantity"}

// ExportFilename returns the timestamped download name for an export artifact.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("filtered_data_%s.csv", now.Format("20060102_150405"))
}

// ExportCSV serializes the view as delimited text, UTF-8 with BOM, original
// columns first and available derived columns appended after them.
func ExportCSV(w io.Writer, v View) error {
	ds := v.Dataset()
	t := ds.Table

	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)

	appended := exportedDerivedColumns(ds)
	header := make([]string, 0, len(t.Columns)+len(appended))
	header = append(header, t.Columns...)
	header = append(header, appended...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for _, i := range v.Rows() {
		record = record[:0]
		record = append(record, t.Rows[i]...)
		for _, col := range appended {
			record = append(record, derivedCell(ds, i, col))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Close()
}

func exportedDerivedColumns(ds *Dataset) []string {
	out := make([]string, 0, len(derivedColumns))
	for _, col := range derivedColumns {
		if ds.Table.HasColumn(col) {
			continue
		}
		switch col {
		case "year", "month", "quarter":
			if !ds.HasDate {
				continue
			}
		case "amount":
			if !ds.HasAmount {
				continue
			}
		case "quantity":
			if !ds.HasQuantity {
				continue
			}
		}
		out = append(out, col)
	}
	return out
}

func derivedCell(ds *Dataset, row int, col string) string {
	switch col {
	case "region":
		return ds.Regions[row]
	case "year":
		if ds.DateOK[row] {
			return strconv.Itoa(ds.Years[row])
		}
	case "month":
		if ds.DateOK[row] {
			return strconv.Itoa(ds.Months[row])
		}
	case "quarter":
		if ds.DateOK[row] {
			return strconv.Itoa(ds.Quarters[row])
		}
	case "amount":
		if ds.AmountOK[row] {
			return strconv.FormatFloat(ds.Amounts[row], 'f', -1, 64)
		}
	case "quantity":
		if ds.QuantityOK[row] {
			return strconv.FormatFloat(ds.Quantities[row], 'f', -1, 64)
		}
	}
	return ""
}
