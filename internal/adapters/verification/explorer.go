package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Status values reported by the zkSync explorer
const (
	StatusQueued     = "queued"
	StatusInProgress = "in_progress"
	StatusSuccessful = "successful"
	StatusFailed     = "failed"
)

// ExplorerRequest is the body of a contract_verification submission
type ExplorerRequest struct {
	ContractAddress       string          `json:"contractAddress"`
	ContractName          string          `json:"contractName"`
	SourceCode            json.RawMessage `json:"sourceCode"`
	CodeFormat            string          `json:"codeFormat"`
	CompilerSolcVersion   string          `json:"compilerSolcVersion"`
	CompilerZksolcVersion string          `json:"compilerZksolcVersion"`
	OptimizationUsed      bool            `json:"optimizationUsed"`
	ConstructorArguments  string          `json:"constructorArguments"`
}

// ExplorerStatus is the state of a submitted verification
type ExplorerStatus struct {
	Status            string   `json:"status"`
	Error             string   `json:"error,omitempty"`
	CompilationErrors []string `json:"compilationErrors,omitempty"`
}

// Terminal reports whether the explorer finished processing the request
func (s *ExplorerStatus) Terminal() bool {
	return s.Status == StatusSuccessful || s.Status == StatusFailed
}

// ExplorerClient talks to a zkSync explorer contract_verification endpoint
type ExplorerClient struct {
	client *http.Client
}

// NewExplorerClient creates a new explorer client
func NewExplorerClient() *ExplorerClient {
	return &ExplorerClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Submit posts a verification request and returns the explorer's request id
func (c *ExplorerClient) Submit(ctx context.Context, verifyURL string, request *ExplorerRequest) (string, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, verifyURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit verification: %w", err)
	}

	// The explorer answers with a bare JSON number
	id := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", fmt.Errorf("unexpected verification response: %s", string(body))
	}
	return id, nil
}

// Status fetches the state of a submitted verification
func (c *ExplorerClient) Status(ctx context.Context, verifyURL, id string) (*ExplorerStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(verifyURL, "/")+"/"+id, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check status: %w", err)
	}

	var status ExplorerStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &status, nil
}

func (c *ExplorerClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req) //nolint:gosec // URL comes from the configured network
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
