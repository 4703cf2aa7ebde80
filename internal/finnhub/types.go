package finnhub

// Quote is the /quote response for one symbol. A quote for an unknown
// symbol comes back zeroed rather than erroring, so Current == 0 is the
// invalid-symbol signal.
type Quote struct {
	Current   float64 `json:"c"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Open      float64 `json:"o"`
	PrevClose float64 `json:"pc"`
	Timestamp int64   `json:"t"`
}

// Profile is the subset of /stock/profile2 we use.
type Profile struct {
	Name string `json:"name"`
}

// Financials holds the basic financial metrics for one symbol. Pointer
// fields distinguish "not reported" from zero.
type Financials struct {
	EPS      *float64
	PERatio  *float64
	Dividend *float64
}

// basicFinancialsResponse is the wire shape of /stock/metric.
type basicFinancialsResponse struct {
	Metric struct {
		EPSTTM                  *float64 `json:"epsTTM"`
		PETTM                   *float64 `json:"peTTM"`
		CurrentDividendYieldTTM *float64 `json:"currentDividendYieldTTM"`
	} `json:"metric"`
}

// candleStatusOK marks a candle response that carries data.
const candleStatusOK = "ok"

// candleResponse is the wire shape of /stock/candle. Status is "ok" when
// closes are present and "no_data" for non-trading ranges.
type candleResponse struct {
	Status string    `json:"s"`
	Close  []float64 `json:"c"`
}

// Trade is one trade event from the websocket stream.
type Trade struct {
	Symbol    string  `json:"s"`
	Price     float64 `json:"p"`
	Timestamp int64   `json:"t"` // Unix milliseconds
	Volume    float64 `json:"v"`
}

// TradeMessage is the envelope Finnhub sends over the websocket. Type is
// "trade" for price updates and "ping" for keepalives.
type TradeMessage struct {
	Type string  `json:"type"`
	Data []Trade `json:"data"`
}

// StaticSnapshot is the one-shot data watch mode fetches per ticker
// before streaming live prices. It carries reference prices rather than
// precomputed changes so percent changes can be re-derived as live
// prices arrive.
type StaticSnapshot struct {
	Symbol       string
	Name         string
	PrevClose    float64
	InitialPrice float64
	EPS          *float64
	PERatio      *float64
	Dividend     *float64
	YTDPrice     *float64
	TenYearPrice *float64
}
