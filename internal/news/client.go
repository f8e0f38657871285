// Package news is the client for the news/resolution collaborator: a
// generative-AI API with search grounding that produces game sheets in the
// morning and final scores in the evening. Responses are treated as
// nondeterministic and network-fallible; callers validate every sheet.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nba-edge-bot/internal/api"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when NEWS_MODEL is not set.
	DefaultModel = "gemini-2.5-pro"
)

// Client calls the generateContent endpoint with search grounding enabled.
type Client struct {
	api     *api.Client
	baseURL string
	apiKey  string
	model   string
}

// NewClient creates a news client. An empty model selects DefaultModel.
func NewClient(httpClient *api.Client, apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:     httpClient,
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// generateContent request/response shapes, reduced to the fields we use.
type generateRequest struct {
	SystemInstruction *contentPayload  `json:"systemInstruction,omitempty"`
	Contents          []contentPayload `json:"contents"`
	Tools             []toolPayload    `json:"tools,omitempty"`
}

type contentPayload struct {
	Role  string        `json:"role,omitempty"`
	Parts []partPayload `json:"parts"`
}

type partPayload struct {
	Text string `json:"text"`
}

type toolPayload struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content contentPayload `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	reqBody := generateRequest{
		SystemInstruction: &contentPayload{Parts: []partPayload{{Text: systemPrompt}}},
		Contents:          []contentPayload{{Role: "user", Parts: []partPayload{{Text: prompt}}}},
		Tools:             []toolPayload{{GoogleSearch: &struct{}{}}},
	}

	data, err := c.api.PostJSON(ctx, url, map[string]string{"x-goog-api-key": c.apiKey}, reqBody)
	if err != nil {
		return "", fmt.Errorf("calling news service: %w", err)
	}

	var resp generateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decoding news service response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("news service returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// GameSheets asks the service for today's games, injuries, lines, and market
// prices, and returns the parsed sheets. Sheets are not validated here.
func (c *Client) GameSheets(ctx context.Context, day time.Time) ([]GameSheet, error) {
	prompt := fmt.Sprintf(morningPromptTemplate, day.Format("2006-01-02"))
	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseGameSheets(raw)
}

// Outcomes asks the service for final scores of the given open bets and
// returns resolutions keyed by "Home|Away". Games that are not final come
// back with a non-FINAL status.
func (c *Client) Outcomes(ctx context.Context, day time.Time, bets []OpenBet) (map[string]Outcome, error) {
	betsJSON, err := json.MarshalIndent(bets, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding open bets: %w", err)
	}

	prompt := fmt.Sprintf(eveningPromptTemplate, day.Format("2006-01-02"), string(betsJSON))
	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseOutcomes(raw)
}

// Ping verifies the service is reachable and returning parseable JSON.
func (c *Client) Ping(ctx context.Context) error {
	today := time.Now().Format("2006-01-02")
	raw, err := c.generate(ctx, fmt.Sprintf(pingPromptTemplate, today, today))
	if err != nil {
		return err
	}

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return err
	}

	var probe struct {
		InternetOK bool   `json:"internet_ok"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal([]byte(obj), &probe); err != nil {
		return fmt.Errorf("parsing health probe: %w", err)
	}
	if !probe.InternetOK || probe.Status != "OK" {
		return fmt.Errorf("news service reports unhealthy probe: %s", obj)
	}
	return nil
}
