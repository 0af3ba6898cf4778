// Package provider contains AI-provider implementations for the
// analyzer. Network-backed LLM adapters live outside this module; the
// static provider here replays a prepared response from disk so the CLI
// and tests run without one.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/accountflow/accountflow/internal/model"
)

// Static replays a provider response stored as JSON.
type Static struct {
	path string
}

// NewStatic creates a provider that reads its response from the given
// JSON file on every call.
func NewStatic(path string) *Static {
	return &Static{path: path}
}

// AnalyzeScenario loads and decodes the response file. The scenario text
// is ignored — the file is the answer.
func (s *Static) AnalyzeScenario(_ context.Context, _ model.AnalysisInput) (model.ProviderResponse, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.ProviderResponse{}, fmt.Errorf("reading provider response: %w", err)
	}

	var resp model.ProviderResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return model.ProviderResponse{}, fmt.Errorf("decoding provider response %s: %w", s.path, err)
	}
	return resp, nil
}
