package dify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/pipeline"
)

const (
	// DefaultTimeout bounds one blocking workflow run. Content generation is
	// slow; 7.5 minutes matches the upstream service's worst case.
	DefaultTimeout = 450 * time.Second

	// workflowUser identifies this application to the workflow service.
	workflowUser = "content-factory"
)

var (
	// ErrAPIKeyNotSet means no API key is configured for the requested workflow.
	ErrAPIKeyNotSet = errors.New("workflow API key not set")

	// ErrWorkflowFailed tags transport failures and non-success responses.
	ErrWorkflowFailed = errors.New("workflow execution failed")

	// ErrMalformedResponse tags response bodies without the expected
	// data.outputs structure.
	ErrMalformedResponse = errors.New("malformed workflow response")
)

// Config configures the workflow client. Every pipeline stage maps to its own
// workflow, addressed by a per-stage API key against the shared base URL.
type Config struct {
	BaseURL string
	APIKeys map[pipeline.WorkflowKey]string
	Timeout time.Duration
}

// Client invokes remote workflows in blocking mode.
type Client struct {
	baseURL    string
	apiKeys    map[pipeline.WorkflowKey]string
	httpClient *http.Client
}

// NewClient creates a workflow client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKeys:    cfg.APIKeys,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type runRequest struct {
	Inputs       map[string]string `json:"inputs"`
	ResponseMode string            `json:"response_mode"`
	User         string            `json:"user"`
}

type runResponse struct {
	Data *struct {
		Outputs map[string]any `json:"outputs"`
	} `json:"data"`
}

// Invoke runs the named workflow with the given inputs and returns its output
// map. All failures come back as tagged errors; the caller turns them into a
// record-level stage failure.
func (c *Client) Invoke(ctx context.Context, key pipeline.WorkflowKey, inputs map[string]string) (pipeline.Outputs, error) {
	apiKey, ok := c.apiKeys[key]
	if !ok || apiKey == "" {
		return nil, fmt.Errorf("%w: workflow %q", ErrAPIKeyNotSet, key)
	}

	body, err := json.Marshal(runRequest{
		Inputs:       inputs,
		ResponseMode: "blocking",
		User:         workflowUser,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrWorkflowFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/workflows/run", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrWorkflowFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkflowFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: workflow %q returned HTTP %d", ErrWorkflowFailed, key, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrWorkflowFailed, err)
	}

	var decoded runResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if decoded.Data == nil || decoded.Data.Outputs == nil {
		return nil, fmt.Errorf("%w: response has no data.outputs", ErrMalformedResponse)
	}

	outputs := make(pipeline.Outputs, len(decoded.Data.Outputs))
	for name, value := range decoded.Data.Outputs {
		switch v := value.(type) {
		case string:
			outputs[name] = v
		case nil:
			outputs[name] = ""
		default:
			outputs[name] = fmt.Sprintf("%v", v)
		}
	}

	return outputs, nil
}

var _ pipeline.WorkflowClient = (*Client)(nil)
