package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/metrics"
	"github.com/rs/zerolog/log"
)

type BaseClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Timeout time.Duration
	Path    string
	// TemplatePath is the path without ids, used as a metrics label
	TemplatePath string
	Headers      map[string]string
}

// Error is returned when the remote side answers with a non 2xx status.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

func StatusCode(err error) (int, bool) {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode, true
	}
	return 0, false
}

func isAllowedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost:
		return true
	default:
		return false
	}
}

func sendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	if !isAllowedMethod(method) {
		return nil, fmt.Errorf("method %s is not allowed", method)
	}

	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := client.GetBaseURL() + opts.Path

	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("request to %s timed out: %w", url, err)
		}
		return nil, fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Ctx(ctx).Debug().
			Str("url", url).
			Int("status", resp.StatusCode).
			Msg("unexpected response status")
		return nil, &Error{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var output R
	if len(respBody) == 0 {
		return &output, nil
	}
	if err := json.Unmarshal(respBody, &output); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &output, nil
}

// SendRequest sends a JSON request and records its duration per template path.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timer := metrics.StartClientRequestDurationTimer(
		client.GetBaseURL(), method, opts.TemplatePath,
	)

	result, err := sendRequest[I, R](ctx, client, method, opts, input)

	statusCode := http.StatusOK
	if err != nil {
		statusCode = 0
		if code, ok := StatusCode(err); ok {
			statusCode = code
		}
	}
	timer(statusCode)

	return result, err
}
