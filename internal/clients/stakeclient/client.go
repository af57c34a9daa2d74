package stakeclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/clients/client"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/rs/zerolog/log"
)

const stakeEntriesEndpoint = "/v1/stake-entries"

var ErrStakeRecordNotFound = errors.New("stake record not found")

type Client struct {
	baseURL    string
	httpClient *http.Client
	cfg        *config.StakeLedgerConfig
}

func New(cfg *config.StakeLedgerConfig) *Client {
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

func (c *Client) GetStakeRecord(ctx context.Context, stakedAssetID string) (*types.StakeRecord, error) {
	if stakedAssetID == "" {
		return nil, fmt.Errorf("empty staked asset id provided")
	}

	type empty struct{}

	callForStakeRecord := func() (*types.StakeRecord, error) {
		opts := &client.HttpClientOptions{
			Path:         stakeEntriesEndpoint + "/" + url.PathEscape(stakedAssetID),
			TemplatePath: stakeEntriesEndpoint + "/{id}",
		}
		return client.SendRequest[empty, types.StakeRecord](ctx, c, http.MethodGet, opts, nil)
	}

	record, err := clientCallWithRetry(ctx, callForStakeRecord, c.cfg)
	if err != nil {
		if code, ok := client.StatusCode(err); ok && code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrStakeRecordNotFound, stakedAssetID)
		}
		return nil, fmt.Errorf("failed to get stake record for %s: %w", stakedAssetID, err)
	}

	if record.StakedAssetID != "" && record.StakedAssetID != stakedAssetID {
		return nil, fmt.Errorf(
			"stake ledger returned record for %s while %s was requested",
			record.StakedAssetID, stakedAssetID,
		)
	}
	record.StakedAssetID = stakedAssetID

	return record, nil
}

// isRetryable reports whether a failed read should be attempted again.
// Client errors other than throttling will not change on retry.
func isRetryable(err error) bool {
	code, ok := client.StatusCode(err)
	if !ok {
		return !errors.Is(err, context.Canceled)
	}
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func clientCallWithRetry[T any](
	ctx context.Context, call retry.RetryableFuncWithData[*T], cfg *config.StakeLedgerConfig,
) (*T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the stake ledger")
		}))

	if err != nil {
		return nil, err
	}
	return result, nil
}
