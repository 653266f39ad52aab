// Package ai calls the external LLM scoring endpoint to produce a
// numeric vendor risk score. The wire contract is the only thing this
// package knows about the model: it sends vendor aggregates and expects
// a JSON object with score, level, reasoning and factors.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/heloise-dot/Kaziflow/internal/logging"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

// VendorData is the aggregate snapshot handed to the scorer.
type VendorData struct {
	VendorID          string  `json:"id"`
	TransactionVolume float64 `json:"transaction_volume"`
	InvoiceCount      int     `json:"invoice_count"`
	PaidInvoiceCount  int     `json:"paid_invoice_count"`
	HistoryYears      int     `json:"history_years"`
}

// Result is the scorer's verdict. Score is 0-100; higher means lower
// risk.
type Result struct {
	Score     int                 `json:"score"`
	Level     string              `json:"level"`
	Reasoning string              `json:"reasoning"`
	Factors   []models.RiskFactor `json:"factors"`
}

type Client struct {
	httpClient   *http.Client
	logger       logging.Logger
	apiKey       string
	model        string
	baseEndpoint string
}

// NewClient builds a scoring client. An empty apiKey switches the client
// to mock mode, which is the development posture.
func NewClient(logger logging.Logger, apiKey, model, baseEndpoint string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger.With("module", "ai_client"),
		apiKey:       apiKey,
		model:        model,
		baseEndpoint: baseEndpoint,
	}
}

// Score produces a risk verdict for the vendor snapshot. It never fails:
// without an API key it returns a fixed mock verdict, and when the
// remote call errors it returns a neutral fallback so the assessment
// flow stays available.
func (c *Client) Score(ctx context.Context, data VendorData) *Result {
	if c.apiKey == "" {
		return &Result{
			Score:     85,
			Level:     "Low",
			Reasoning: "Mock analysis: API key not set.",
			Factors:   []models.RiskFactor{{Label: "Mock Factor", Impact: 0.8}},
		}
	}

	result, err := c.generate(ctx, data)
	if err != nil {
		c.logger.Error(ctx, "scoring call failed, using fallback", "error", err.Error())
		return &Result{
			Score:     50,
			Level:     "Medium",
			Reasoning: "AI analysis failed, using fallback.",
			Factors:   []models.RiskFactor{},
		}
	}
	return result
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, data VendorData) (*Result, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Analyze the following vendor supply chain data and provide a fintech risk score (0-100).
A higher score means LOWER risk (safer).

Data: %s

Consider:
- Transaction frequency
- Payment delay history
- Delivery consistency

Return a valid JSON object with:
- score (number)
- level (string: Low, Medium, High)
- reasoning (string)
- factors (list of objects with label and impact)`, payload)

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseEndpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, b)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty model response")
	}

	result := &Result{}
	if err := json.Unmarshal([]byte(gr.Candidates[0].Content.Parts[0].Text), result); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}
	if result.Score < 0 || result.Score > 100 {
		return nil, fmt.Errorf("score %d out of range", result.Score)
	}

	return result, nil
}
