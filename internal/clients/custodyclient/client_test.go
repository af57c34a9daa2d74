package custodyclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/payout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return New(&config.CustodyConfig{
		Mode:          config.CustodyModeHTTP,
		URL:           url,
		Timeout:       time.Second,
		MaxRetryTimes: 3,
		RetryInterval: time.Millisecond,
	})
}

func TestClientMintTo(t *testing.T) {
	t.Run("sends request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/mint", r.URL.Path)

			var req payout.MintRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, payout.MintRequest{Token: "tok", Destination: "dst", Authority: "auth", Amount: 5}, req)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		err := newTestClient(server.URL).MintTo(t.Context(), payout.MintRequest{
			Token: "tok", Destination: "dst", Authority: "auth", Amount: 5,
		})
		require.NoError(t, err)
	})
	t.Run("server error is not retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		err := newTestClient(server.URL).MintTo(t.Context(), payout.MintRequest{Amount: 1})
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
	t.Run("throttled request is retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		err := newTestClient(server.URL).Transfer(t.Context(), payout.TransferRequest{Amount: 1})
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestClientAvailableBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/treasury-1/balance", r.URL.Path)
		_ = json.NewEncoder(w).Encode(balanceResponse{Account: "treasury-1", Amount: 50})
	}))
	defer server.Close()

	balance, err := newTestClient(server.URL).AvailableBalance(t.Context(), "treasury-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(50), balance)

	_, err = newTestClient(server.URL).AvailableBalance(t.Context(), "")
	assert.Error(t, err)
}
