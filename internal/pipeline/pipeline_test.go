package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Duarte0903/stock-summary/internal/config"
	"github.com/Duarte0903/stock-summary/internal/notify"
	"github.com/Duarte0903/stock-summary/internal/report"
	"github.com/Duarte0903/stock-summary/internal/types"
)

type fakeFetcher struct {
	snapshot   *types.MarketSnapshot
	err        error
	gotSymbols []string
}

func (f *fakeFetcher) FetchSnapshot(_ context.Context, symbols []string) (*types.MarketSnapshot, error) {
	f.gotSymbols = symbols
	return f.snapshot, f.err
}

type fakeAnalyzer struct {
	result      types.AnalysisResult
	gotSnapshot *types.MarketSnapshot
}

func (f *fakeAnalyzer) Analyze(_ context.Context, snapshot *types.MarketSnapshot) types.AnalysisResult {
	f.gotSnapshot = snapshot
	return f.result
}

type fakeMailer struct {
	content *types.EmailContent
	result  notify.DeliveryResult
}

func (f *fakeMailer) Send(content *types.EmailContent) notify.DeliveryResult {
	f.content = content
	return f.result
}

func testSnapshot() *types.MarketSnapshot {
	return &types.MarketSnapshot{
		Tickers: []types.TickerSnapshot{
			{Symbol: "AAPL", Close: 150.00, Volume: 1000000},
			{Symbol: "MSFT", Close: 300.00, Volume: 2000000},
		},
	}
}

func testPipeline(fetcher *fakeFetcher, analyzer *fakeAnalyzer, mailer *fakeMailer) *Pipeline {
	return &Pipeline{
		cfg:       &config.Config{StockSymbols: []string{"AAPL", "MSFT"}},
		fetcher:   fetcher,
		analyzer:  analyzer,
		formatter: report.NewFormatter(),
		mailer:    mailer,
		now:       func() time.Time { return time.Date(2026, time.March, 9, 16, 5, 0, 0, time.UTC) },
	}
}

func TestRunSuccess(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot()}
	analyzer := &fakeAnalyzer{result: types.AnalysisResult{
		Success:      true,
		AnalysisText: "**AAPL** - SELL",
		RawPayload:   []byte(`{"usageMetadata":{"totalTokenCount":500}}`),
	}}
	mailer := &fakeMailer{result: notify.DeliveryResult{Sent: true}}

	p := testPipeline(fetcher, analyzer, mailer)
	err := p.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, fetcher.gotSymbols)
	assert.Equal(t, testSnapshot(), analyzer.gotSnapshot)

	require.NotNil(t, mailer.content)
	assert.Equal(t, "📊 Stock Portfolio Analysis Report", mailer.content.Subject)
	assert.Contains(t, mailer.content.HTMLBody, "AAPL")
}

func TestRunFetchFailureAbortsWithoutEmail(t *testing.T) {
	fetchErr := errors.New("no session data available for AAPL")
	fetcher := &fakeFetcher{err: fetchErr}
	analyzer := &fakeAnalyzer{}
	mailer := &fakeMailer{}

	p := testPipeline(fetcher, analyzer, mailer)
	err := p.Run(context.Background(), nil)

	require.ErrorIs(t, err, fetchErr)
	assert.Nil(t, analyzer.gotSnapshot)
	assert.Nil(t, mailer.content, "no partial email on fetch failure")
}

func TestRunAnalysisFailureStillSendsErrorReport(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot()}
	analyzer := &fakeAnalyzer{result: types.AnalysisResult{
		ErrorKind: "API Error: 500",
		Message:   "internal error",
	}}
	mailer := &fakeMailer{result: notify.DeliveryResult{Sent: true}}

	p := testPipeline(fetcher, analyzer, mailer)
	err := p.Run(context.Background(), nil)
	require.NoError(t, err)

	require.NotNil(t, mailer.content)
	assert.Equal(t, "Stock Analysis - Error Report", mailer.content.Subject)
	assert.Contains(t, mailer.content.HTMLBody, "API Error: 500")
}

func TestRunMailFailureDoesNotFailRun(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot()}
	analyzer := &fakeAnalyzer{result: types.AnalysisResult{
		Success:      true,
		AnalysisText: "analysis",
	}}
	mailer := &fakeMailer{result: notify.DeliveryResult{
		Sent: false,
		Err:  errors.New("connection refused"),
	}}

	p := testPipeline(fetcher, analyzer, mailer)
	err := p.Run(context.Background(), nil)
	require.NoError(t, err)
}

func TestDecodeEvent(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("daily trigger"))

	tests := []struct {
		name    string
		body    []byte
		want    string
		decoded bool
	}{
		{"valid payload", []byte(`{"data":"` + encoded + `"}`), "daily trigger", true},
		{"empty body", nil, "", false},
		{"no data key", []byte(`{"other":"x"}`), "", false},
		{"invalid json", []byte(`{`), "", false},
		{"invalid base64", []byte(`{"data":"!!!"}`), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeEvent(tt.body)
			assert.Equal(t, tt.decoded, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
