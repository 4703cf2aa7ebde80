package display

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rshade/tickwatch/internal/engine"
)

// recordPayload is the machine-readable shape of one record. Pointer
// metric fields serialize as null when absent, matching the snapshot
// format.
type recordPayload struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	FetchedAt     *time.Time `json:"fetched_at,omitempty"`
	Price         *float64   `json:"price"`
	DailyChange   *float64   `json:"daily_change"`
	EPS           *float64   `json:"eps,omitempty"`
	PERatio       *float64   `json:"pe_ratio,omitempty"`
	Dividend      *float64   `json:"dividend,omitempty"`
	YTDChange     *float64   `json:"ytd_change,omitempty"`
	TenYearChange *float64   `json:"ten_year_change,omitempty"`
	Error         string     `json:"error,omitempty"`
}

func toPayload(record engine.Record) recordPayload {
	payload := recordPayload{
		Symbol: record.Symbol,
		Name:   record.DisplayName,
		Status: string(record.Status),
	}
	if record.Err != nil {
		payload.Error = record.Err.Error()
	}
	if record.Entry == nil {
		return payload
	}
	fetchedAt := record.Entry.FetchedAt
	payload.FetchedAt = &fetchedAt
	payload.Price = record.Entry.Price
	payload.DailyChange = record.Entry.DailyChange
	payload.EPS = record.Entry.EPS
	payload.PERatio = record.Entry.PERatio
	payload.Dividend = record.Entry.Dividend
	payload.YTDChange = record.Entry.YTDChange
	payload.TenYearChange = record.Entry.TenYearChange
	return payload
}

// RenderJSON writes records as one indented JSON array.
func RenderJSON(w io.Writer, records []engine.Record) error {
	payloads := make([]recordPayload, len(records))
	for i, record := range records {
		payloads[i] = toPayload(record)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payloads)
}

// RenderNDJSON writes one JSON object per line per record.
func RenderNDJSON(w io.Writer, records []engine.Record) error {
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(toPayload(record)); err != nil {
			return err
		}
	}
	return nil
}
