/*
Package report renders the analysis outcome into an email subject and HTML
body. Tables are built from the structured snapshot rather than re-parsed
from the prompt text, which keeps the rendered output identical for
well-formed input while avoiding the text round-trip.
*/
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/yuin/goldmark"

	"github.com/Duarte0903/stock-summary/internal/analysis"
	"github.com/Duarte0903/stock-summary/internal/types"
)

const (
	subjectReport = "📊 Stock Portfolio Analysis Report"
	subjectError  = "Stock Analysis - Error Report"

	recipientName = "Investor"

	timestampFormat = "January 02, 2006 at 03:04 PM"
)

type stockRow struct {
	Symbol string
	Price  string
	Volume string
}

type metricRow struct {
	Metric string
	Value  string
}

type reportData struct {
	RecipientName string
	Timestamp     string
	StockRows     []stockRow
	MarketRows    []metricRow
	Analysis      template.HTML
	TokenCount    string
}

type errorData struct {
	RecipientName string
	ErrorKind     string
	Message       string
}

// Formatter deterministically renders email content from an analysis result.
type Formatter struct {
	reportTmpl *template.Template
	errorTmpl  *template.Template
	markdown   goldmark.Markdown
}

// NewFormatter creates a formatter with the default templates.
func NewFormatter() *Formatter {
	return &Formatter{
		reportTmpl: template.Must(template.New("report").Parse(reportHTMLTemplate)),
		errorTmpl:  template.Must(template.New("error").Parse(errorHTMLTemplate)),
		markdown:   goldmark.New(),
	}
}

// Format renders subject and HTML body for the given outcome. A failure
// result produces the fixed error report without touching the snapshot.
func (f *Formatter) Format(snapshot *types.MarketSnapshot, result types.AnalysisResult, now time.Time) (*types.EmailContent, error) {
	if !result.Success {
		return f.formatError(result)
	}

	rows := make([]stockRow, 0, len(snapshot.Tickers))
	for _, t := range snapshot.Tickers {
		rows = append(rows, stockRow{
			Symbol: t.Symbol,
			Price:  analysis.FormatPrice(t.Close),
			Volume: analysis.FormatCount(t.Volume),
		})
	}

	stats := analysis.ComputeStats(snapshot)
	marketRows := []metricRow{
		{Metric: "Average Price", Value: analysis.FormatPrice(stats.MeanPrice)},
		{Metric: "Price Range", Value: fmt.Sprintf("%s - %s", analysis.FormatPrice(stats.MinPrice), analysis.FormatPrice(stats.MaxPrice))},
		{Metric: "Average Volume", Value: analysis.FormatCount(stats.MeanVolume)},
	}

	var analysisBuf bytes.Buffer
	if err := f.markdown.Convert([]byte(result.AnalysisText), &analysisBuf); err != nil {
		return nil, fmt.Errorf("failed to render analysis markdown: %w", err)
	}

	data := reportData{
		RecipientName: recipientName,
		Timestamp:     now.Format(timestampFormat),
		StockRows:     rows,
		MarketRows:    marketRows,
		Analysis:      template.HTML(analysisBuf.String()),
		TokenCount:    tokenCount(result.RawPayload),
	}

	var htmlBuf bytes.Buffer
	if err := f.reportTmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}

	return &types.EmailContent{
		Subject:  subjectReport,
		HTMLBody: htmlBuf.String(),
	}, nil
}

func (f *Formatter) formatError(result types.AnalysisResult) (*types.EmailContent, error) {
	data := errorData{
		RecipientName: recipientName,
		ErrorKind:     result.ErrorKind,
		Message:       result.Message,
	}

	var htmlBuf bytes.Buffer
	if err := f.errorTmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render error template: %w", err)
	}

	return &types.EmailContent{
		Subject:  subjectError,
		HTMLBody: htmlBuf.String(),
	}, nil
}

// tokenCount extracts usageMetadata.totalTokenCount from the raw provider
// payload, falling back to a placeholder when absent.
func tokenCount(raw []byte) string {
	var meta struct {
		UsageMetadata struct {
			TotalTokenCount int `json:"totalTokenCount"`
		} `json:"usageMetadata"`
	}

	if err := json.Unmarshal(raw, &meta); err != nil || meta.UsageMetadata.TotalTokenCount == 0 {
		return "-"
	}
	return strconv.Itoa(meta.UsageMetadata.TotalTokenCount)
}
