package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Duarte0903/stock-summary/internal/types"
)

var grouped = message.NewPrinter(language.English)

// FormatPrice renders a price as $X.XX.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(v int64) string {
	return grouped.Sprintf("%d", v)
}

// Stats are the aggregate figures rendered into the market context block.
type Stats struct {
	MeanPrice  float64
	MinPrice   float64
	MaxPrice   float64
	MeanVolume int64
}

// ComputeStats computes mean/min/max price and mean volume over a snapshot.
// The snapshot must be non-empty.
func ComputeStats(snapshot *types.MarketSnapshot) Stats {
	var priceSum, volumeSum float64
	stats := Stats{
		MinPrice: snapshot.Tickers[0].Close,
		MaxPrice: snapshot.Tickers[0].Close,
	}

	for _, t := range snapshot.Tickers {
		priceSum += t.Close
		volumeSum += float64(t.Volume)
		if t.Close < stats.MinPrice {
			stats.MinPrice = t.Close
		}
		if t.Close > stats.MaxPrice {
			stats.MaxPrice = t.Close
		}
	}

	n := float64(len(snapshot.Tickers))
	stats.MeanPrice = priceSum / n
	stats.MeanVolume = int64(volumeSum / n)
	return stats
}

// RenderSummary renders the stock data header block: one line per symbol in
// snapshot order, followed by the market context aggregates. The same text is
// sent to the model and carried on the analysis result.
func RenderSummary(snapshot *types.MarketSnapshot) string {
	var sb strings.Builder

	sb.WriteString("CURRENT STOCK DATA ANALYSIS REQUEST\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, t := range snapshot.Tickers {
		sb.WriteString(fmt.Sprintf("%s: Price %s | Volume %s\n", t.Symbol, FormatPrice(t.Close), FormatCount(t.Volume)))
	}

	stats := ComputeStats(snapshot)
	sb.WriteString("\nMARKET CONTEXT:\n")
	sb.WriteString(fmt.Sprintf("Average Price: %s\n", FormatPrice(stats.MeanPrice)))
	sb.WriteString(fmt.Sprintf("Price Range: %s - %s\n", FormatPrice(stats.MinPrice), FormatPrice(stats.MaxPrice)))
	sb.WriteString(fmt.Sprintf("Average Volume: %s\n", FormatCount(stats.MeanVolume)))
	sb.WriteString(fmt.Sprintf("Total Stocks: %d\n", len(snapshot.Tickers)))

	return sb.String()
}

const analysisInstructions = `

ANALYSIS REQUEST:
As a professional stock analyst, analyze the above data and provide SELL recommendations. I need specific, actionable advice.

REQUIRED OUTPUT FORMAT:
For each stock you recommend selling, provide:

1. **SYMBOL & RECOMMENDATION**: [Stock] - [STRONG SELL/SELL/CONSIDER SELLING]
2. **RISK SCORE**: [1-10, where 10 = highest risk/strongest sell signal]
3. **PRICE ANALYSIS**: How does the current price compare to the group?
4. **VOLUME ANALYSIS**: What does the trading volume indicate?
5. **KEY RATIONALE**: 3-4 specific reasons to sell this stock
6. **CONFIDENCE**: [HIGH/MEDIUM/LOW] confidence in this recommendation

ANALYSIS CRITERIA:
- Compare each stock's price to the group average (%s)
- Analyze volume patterns for risk signals
- Consider sector-specific factors (tech, aerospace, entertainment)
- Evaluate relative valuation within this portfolio
- Factor in company-specific risks you're aware of

Focus on stocks that show the strongest sell signals based on the current data.
Provide clear, actionable recommendations with specific reasoning.
`

// BuildPrompt assembles the full prompt and returns it with the summary
// header. The group average appears both in the header and the instruction
// block; the duplication is part of the expected prompt format.
func BuildPrompt(snapshot *types.MarketSnapshot) (prompt string, summary string) {
	summary = RenderSummary(snapshot)
	stats := ComputeStats(snapshot)
	prompt = summary + fmt.Sprintf(analysisInstructions, FormatPrice(stats.MeanPrice))
	return prompt, summary
}
