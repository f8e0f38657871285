package news

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The model is instructed to return raw JSON but occasionally wraps it in
// markdown fences or leading prose anyway. Extraction strips fences and cuts
// out the outermost array/object rather than trusting the whole response.

// ExtractJSONArray returns the outermost JSON array in raw model text.
func ExtractJSONArray(raw string) (string, error) {
	cleaned := stripFences(raw)
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON array found in response")
	}
	return cleaned[start : end+1], nil
}

// ExtractJSONObject returns the outermost JSON object in raw model text.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := stripFences(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return cleaned[start : end+1], nil
}

func stripFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// ParseGameSheets decodes the morning response into game sheets.
func ParseGameSheets(raw string) ([]GameSheet, error) {
	arr, err := ExtractJSONArray(raw)
	if err != nil {
		return nil, err
	}

	var sheets []GameSheet
	if err := json.Unmarshal([]byte(arr), &sheets); err != nil {
		return nil, fmt.Errorf("parsing game sheets: %w", err)
	}
	return sheets, nil
}

type resolutionsEnvelope struct {
	Resolutions []Outcome `json:"resolutions"`
}

// ParseOutcomes decodes the evening response into a map keyed by
// "Home|Away".
func ParseOutcomes(raw string) (map[string]Outcome, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var env resolutionsEnvelope
	if err := json.Unmarshal([]byte(obj), &env); err != nil {
		return nil, fmt.Errorf("parsing resolutions: %w", err)
	}

	outcomes := make(map[string]Outcome, len(env.Resolutions))
	for _, o := range env.Resolutions {
		outcomes[o.MatchKey()] = o
	}
	return outcomes, nil
}
