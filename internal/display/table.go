package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rshade/tickwatch/internal/config"
	"github.com/rshade/tickwatch/internal/engine"
)

// tabwriterPadding is the minimum padding between columns.
const tabwriterPadding = 2

// errorMessage is the row text for tickers with no usable data.
const errorMessage = "Data unavailable"

// column pairs a header with the cell formatter for one record.
type column struct {
	header string
	cell   func(engine.Record) string
}

// tableColumns builds the column set: the base columns always, the
// optional ones per settings.
func tableColumns(cols config.Columns) []column {
	columns := []column{
		{"Ticker", func(r engine.Record) string { return r.Symbol }},
		{"Company Name", func(r engine.Record) string { return r.DisplayName }},
		{"Current Price", func(r engine.Record) string { return FormatPrice(r.Entry.Price) }},
		{"Daily % Change", func(r engine.Record) string { return FormatPercent(r.Entry.DailyChange) }},
	}
	if cols.EPS {
		columns = append(columns, column{"EPS", func(r engine.Record) string { return FormatValue(r.Entry.EPS) }})
	}
	if cols.PERatio {
		columns = append(columns, column{"PE Ratio", func(r engine.Record) string { return FormatValue(r.Entry.PERatio) }})
	}
	if cols.Dividend {
		columns = append(columns, column{"Dividend", func(r engine.Record) string { return FormatValue(r.Entry.Dividend) }})
	}
	if cols.YTDChange {
		columns = append(columns, column{"YTD % Change", func(r engine.Record) string { return FormatPercent(r.Entry.YTDChange) }})
	}
	if cols.TenYearChange {
		columns = append(columns, column{"10-Year % Change", func(r engine.Record) string { return FormatPercent(r.Entry.TenYearChange) }})
	}
	return columns
}

// RenderTable writes records as an aligned table. Error records render
// the symbol and a message in place of metric cells.
func RenderTable(w io.Writer, records []engine.Record, settings *config.Settings) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No tickers to display.")
		return err
	}

	columns := tableColumns(settings.Columns)
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	headers := make([]string, len(columns))
	dashes := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.header
		dashes[i] = strings.Repeat("-", len(col.header))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, record := range records {
		if record.Entry == nil {
			cells := make([]string, len(columns))
			cells[0] = record.Symbol
			cells[1] = errorMessage
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
			continue
		}
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = col.cell(record)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}
