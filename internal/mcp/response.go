package mcp

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Response is the envelope every tool returns.
type Response struct {
	Data     any               `json:"data"`
	Charts   map[string]string `json:"charts,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// WrapResponse builds an envelope, dropping empty charts.
func WrapResponse(data any, charts map[string]string, warnings []string) Response {
	var kept map[string]string
	for name, chart := range charts {
		if chart == "" {
			continue
		}
		if kept == nil {
			kept = make(map[string]string)
		}
		kept[name] = chart
	}
	return Response{Data: data, Charts: kept, Warnings: warnings}
}

func formatResult(data any) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(out), nil
}
