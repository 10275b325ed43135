package types

// TickerSnapshot holds the latest one-day session data for a single symbol.
type TickerSnapshot struct {
	Symbol string
	Close  float64
	Volume int64
}

// MarketSnapshot is the full set of price/volume observations for one run.
// Tickers preserve the configured symbol order, one entry per symbol.
type MarketSnapshot struct {
	Tickers []TickerSnapshot
}

// AnalysisResult is the outcome of one analysis request. Exactly one shape
// holds per run: a success carries the analysis text, the rendered summary
// and the raw provider payload; a failure carries an error kind and message.
type AnalysisResult struct {
	Success      bool
	AnalysisText string
	SummaryText  string
	RawPayload   []byte
	ErrorKind    string
	Message      string
}

// EmailContent is a fully rendered message, derived deterministically from
// the snapshot and analysis result.
type EmailContent struct {
	Subject  string
	HTMLBody string
}
