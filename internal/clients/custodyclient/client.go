package custodyclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/clients/client"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/payout"
	"github.com/rs/zerolog/log"
)

const (
	mintEndpoint     = "/v1/mint"
	transferEndpoint = "/v1/transfer"
	accountsEndpoint = "/v1/accounts"
)

type balanceResponse struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

type empty struct{}

// Client talks to a remote custody service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cfg        *config.CustodyConfig
}

func New(cfg *config.CustodyConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return c.baseURL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) MintTo(ctx context.Context, req payout.MintRequest) error {
	opts := &client.HttpClientOptions{
		Path:         mintEndpoint,
		TemplatePath: mintEndpoint,
	}
	_, err := clientCallWithRetry(ctx, func() (*empty, error) {
		return client.SendRequest[payout.MintRequest, empty](ctx, c, http.MethodPost, opts, &req)
	}, c.cfg)
	if err != nil {
		return fmt.Errorf("failed to mint %d %s to %s: %w", req.Amount, req.Token, req.Destination, err)
	}
	return nil
}

func (c *Client) Transfer(ctx context.Context, req payout.TransferRequest) error {
	opts := &client.HttpClientOptions{
		Path:         transferEndpoint,
		TemplatePath: transferEndpoint,
	}
	_, err := clientCallWithRetry(ctx, func() (*empty, error) {
		return client.SendRequest[payout.TransferRequest, empty](ctx, c, http.MethodPost, opts, &req)
	}, c.cfg)
	if err != nil {
		return fmt.Errorf("failed to transfer %d from %s to %s: %w", req.Amount, req.Source, req.Destination, err)
	}
	return nil
}

func (c *Client) AvailableBalance(ctx context.Context, account string) (uint64, error) {
	if account == "" {
		return 0, fmt.Errorf("empty account provided")
	}

	opts := &client.HttpClientOptions{
		Path:         accountsEndpoint + "/" + url.PathEscape(account) + "/balance",
		TemplatePath: accountsEndpoint + "/{account}/balance",
	}
	resp, err := clientCallWithRetry(ctx, func() (*balanceResponse, error) {
		return client.SendRequest[empty, balanceResponse](ctx, c, http.MethodGet, opts, nil)
	}, c.cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance of %s: %w", account, err)
	}
	return resp.Amount, nil
}

// Mints and transfers are not idempotent on the custody side, so only
// throttled requests (rejected before processing) are sent again.
func isThrottled(err error) bool {
	code, ok := client.StatusCode(err)
	return ok && code == http.StatusTooManyRequests
}

func clientCallWithRetry[T any](
	ctx context.Context, call retry.RetryableFuncWithData[*T], cfg *config.CustodyConfig,
) (*T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.RetryIf(isThrottled),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("custody service throttled the request")
		}))

	if err != nil {
		return nil, err
	}
	return result, nil
}
