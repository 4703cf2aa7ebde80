package cache

import (
	"encoding/json"
	"errors"
	"time"
)

// Metrics holds the fetched values for one symbol. Pointer fields
// distinguish "not available" from a real zero; unavailable fields
// serialize as JSON null and round-trip back to nil.
type Metrics struct {
	// Price is the current quote price.
	Price *float64 `json:"price"`

	// DailyChange is the percent change against the previous close.
	DailyChange *float64 `json:"daily_change"`

	// EPS is earnings per share, trailing twelve months.
	EPS *float64 `json:"eps"`

	// PERatio is the price/earnings ratio, trailing twelve months.
	PERatio *float64 `json:"pe_ratio"`

	// Dividend is the current dividend yield, trailing twelve months.
	Dividend *float64 `json:"dividend"`

	// YTDChange is the percent change since the start of the year.
	YTDChange *float64 `json:"ytd_change"`

	// TenYearChange is the percent change over the last ten years.
	TenYearChange *float64 `json:"ten_year_change"`

	// ResolvedName is the company name from the profile endpoint, when
	// one was looked up.
	ResolvedName string `json:"resolved_name,omitempty"`
}

// Entry is one cached snapshot record: the metrics for a symbol plus
// the time they were fetched.
type Entry struct {
	// Symbol is the uppercase ticker symbol.
	Symbol string `json:"symbol"`

	// FetchedAt is when the metrics were retrieved. The zero value marks
	// an entry of unknown age, which is never fresh.
	FetchedAt time.Time `json:"fetched_at"`

	Metrics
}

// NewEntry creates an entry for symbol fetched at the given time.
func NewEntry(symbol string, fetchedAt time.Time, metrics Metrics) *Entry {
	return &Entry{
		Symbol:    symbol,
		FetchedAt: fetchedAt,
		Metrics:   metrics,
	}
}

// MarshalJSON implements json.Marshaler for Entry.
// The fetch time is formatted as RFC3339 for readability in the snapshot file.
func (e *Entry) MarshalJSON() ([]byte, error) {
	type Alias Entry
	return json.Marshal(&struct {
		*Alias

		FetchedAt string `json:"fetched_at"`
	}{
		Alias:     (*Alias)(e),
		FetchedAt: e.FetchedAt.UTC().Format(time.RFC3339),
	})
}

// UnmarshalJSON implements json.Unmarshaler for Entry.
// A missing or unparseable fetched_at leaves the zero time rather than
// failing, so the entry survives as "present but never fresh". Unknown
// fields are ignored, which keeps old binaries readable against newer
// snapshot files.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("cannot unmarshal into nil Entry")
	}
	type Alias Entry
	aux := &struct {
		*Alias

		FetchedAt string `json:"fetched_at"`
	}{
		Alias: (*Alias)(e),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.FetchedAt == "" {
		e.FetchedAt = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, aux.FetchedAt)
	if err != nil {
		e.FetchedAt = time.Time{}
		return nil
	}
	e.FetchedAt = parsed
	return nil
}
