package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HealthChecker is implemented by sources that can verify connectivity
// before a session starts.
type HealthChecker interface {
	CheckHealth(ctx context.Context) (*HealthStatus, error)
}

// HealthStatus reports provider availability and the models it serves.
type HealthStatus struct {
	Available bool
	Error     error
	Models    []string
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// CheckHealth verifies the Ollama server is reachable and lists its models.
// A connection failure is reported in the status rather than as an error.
func (o *OllamaSource) CheckHealth(ctx context.Context) (*HealthStatus, error) {
	o.log.Debug("checking server health", "base_url", o.baseURL)

	url := fmt.Sprintf("%s/api/tags", o.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return &HealthStatus{Available: false, Error: err}, err
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		o.log.Error("failed to connect", "error", err)
		return &HealthStatus{
			Available: false,
			Error:     fmt.Errorf("cannot connect to Ollama at %s: %w", o.baseURL, err),
		}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		o.log.Error("server returned non-OK status", "status_code", resp.StatusCode)
		return &HealthStatus{
			Available: false,
			Error:     fmt.Errorf("Ollama returned status %d", resp.StatusCode),
		}, nil
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return &HealthStatus{
			Available: true,
			Error:     fmt.Errorf("failed to read model list: %w", err),
		}, nil
	}

	status := &HealthStatus{Available: true}
	for _, m := range tags.Models {
		status.Models = append(status.Models, m.Name)
	}
	o.log.Debug("health check successful", "model_count", len(status.Models))
	return status, nil
}
