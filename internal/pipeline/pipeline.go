/*
Package pipeline orchestrates one run: fetch market data, request the
analysis, format the report and dispatch the email. Control flow is strictly
linear with no feedback loops.
*/
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Duarte0903/stock-summary/internal/analysis"
	"github.com/Duarte0903/stock-summary/internal/config"
	"github.com/Duarte0903/stock-summary/internal/market"
	"github.com/Duarte0903/stock-summary/internal/notify"
	"github.com/Duarte0903/stock-summary/internal/report"
	"github.com/Duarte0903/stock-summary/internal/types"
)

// MarketFetcher retrieves the snapshot for the configured symbols.
type MarketFetcher interface {
	FetchSnapshot(ctx context.Context, symbols []string) (*types.MarketSnapshot, error)
}

// Analyzer submits the snapshot for a sell-recommendation analysis.
type Analyzer interface {
	Analyze(ctx context.Context, snapshot *types.MarketSnapshot) types.AnalysisResult
}

// Mailer delivers the rendered report.
type Mailer interface {
	Send(content *types.EmailContent) notify.DeliveryResult
}

// Pipeline wires the four stages together.
type Pipeline struct {
	cfg       *config.Config
	fetcher   MarketFetcher
	analyzer  Analyzer
	formatter *report.Formatter
	mailer    Mailer
	now       func() time.Time
}

// New builds a pipeline with production collaborators from the config.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		fetcher:   market.NewFetcher(cfg.YahooBaseURL),
		analyzer:  analysis.NewAnalyzer(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.ConfirmCost),
		formatter: report.NewFormatter(),
		mailer: notify.NewEmailSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Password: cfg.EmailPassword,
		}),
		now: time.Now,
	}
}

// Run executes one fetch → analyze → format → send cycle. The optional event
// payload is decoded and logged only; it carries no control semantics. Fetch
// failures abort the run; analysis failures still produce a degraded error
// email; delivery failures are logged and swallowed.
func (p *Pipeline) Run(ctx context.Context, event []byte) error {
	log.Println("Starting the script...")

	if msg, ok := DecodeEvent(event); ok {
		log.Printf("Received trigger message: %s", msg)
	}

	snapshot, err := p.fetcher.FetchSnapshot(ctx, p.cfg.StockSymbols)
	if err != nil {
		return fmt.Errorf("failed to fetch market data: %w", err)
	}
	log.Println("Data fetched successfully.")

	result := p.analyzer.Analyze(ctx, snapshot)
	log.Println("Analysis completed.")

	content, err := p.formatter.Format(snapshot, result, p.now())
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	p.mailer.Send(content)

	return nil
}
