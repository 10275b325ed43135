/*
Package analysis turns a market snapshot into a natural-language prompt,
submits it to the Gemini generateContent endpoint and interprets the response.
*/
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"resty.dev/v3"

	"github.com/Duarte0903/stock-summary/internal/types"
)

const generateContentPath = "/v1beta/models/gemini-1.5-flash:generateContent"

// Generation parameters, fixed per request.
const (
	temperature     = 0.3
	topK            = 40
	topP            = 0.95
	maxOutputTokens = 1500
)

// Failure kinds reported on the analysis result.
const (
	ErrKindCostGate      = "Cost confirmation required"
	ErrKindRequestFailed = "Request Failed"
)

const costGateMessage = `
⚠️  COST PROTECTION ENABLED ⚠️

To proceed with Gemini API call:
1. Check your API quota at: https://console.cloud.google.com/apis/api/generativelanguage.googleapis.com
2. Gemini Pro is FREE up to 60 requests/minute, 1,500 requests/day
3. Set CONFIRM_COST=true in the configuration
`

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

var safetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyzer submits sell-recommendation requests to the Gemini API.
type Analyzer struct {
	client      *resty.Client
	apiKey      string
	confirmCost bool
}

// NewAnalyzer creates an analyzer against the given API base URL. When
// confirmCost is false every call short-circuits before any request is built.
func NewAnalyzer(baseURL, apiKey string, confirmCost bool) *Analyzer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)

	return &Analyzer{
		client:      client,
		apiKey:      apiKey,
		confirmCost: confirmCost,
	}
}

// Analyze builds the prompt from the snapshot and submits a single request.
// Failures are encoded in the result rather than returned as errors, so a
// degraded report can still be produced downstream. No retries are made.
func (a *Analyzer) Analyze(ctx context.Context, snapshot *types.MarketSnapshot) types.AnalysisResult {
	if !a.confirmCost {
		return types.AnalysisResult{
			ErrorKind: ErrKindCostGate,
			Message:   costGateMessage,
		}
	}

	prompt, summary := BuildPrompt(snapshot)

	payload := generateRequest{
		Contents: []requestContent{
			{Parts: []requestPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			TopK:            topK,
			TopP:            topP,
			MaxOutputTokens: maxOutputTokens,
		},
		SafetySettings: safetySettings,
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("key", a.apiKey).
		SetBody(payload).
		Post(generateContentPath)
	if err != nil {
		return types.AnalysisResult{
			ErrorKind: ErrKindRequestFailed,
			Message:   err.Error(),
		}
	}

	body := resp.Bytes()

	if !resp.IsSuccess() {
		return types.AnalysisResult{
			ErrorKind: fmt.Sprintf("API Error: %d", resp.StatusCode()),
			Message:   string(body),
		}
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return types.AnalysisResult{
			ErrorKind: ErrKindRequestFailed,
			Message:   fmt.Sprintf("failed to decode model response: %v", err),
		}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return types.AnalysisResult{
			ErrorKind: ErrKindRequestFailed,
			Message:   "no candidates in model response",
		}
	}

	logUsageAdvisory()

	return types.AnalysisResult{
		Success:      true,
		AnalysisText: parsed.Candidates[0].Content.Parts[0].Text,
		SummaryText:  summary,
		RawPayload:   body,
	}
}

// logUsageAdvisory reports approximate API usage after a successful call.
// Informational only.
func logUsageAdvisory() {
	log.Println("REQUEST USAGE:")
	log.Println("   • ~1 API request")
	log.Println("   • ~500-800 tokens (input + output)")
	log.Println("   • Cost: $0.00 (within free limits)")
	log.Println("Monitor usage at: https://console.cloud.google.com/apis/api/generativelanguage.googleapis.com")
}
