package api

import (
	"errors"
	"net/http"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/clients/stakeclient"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/services"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func statusFromError(err error) int {
	var payoutErr *types.PayoutError

	switch {
	case db.IsNotFoundError(err), errors.Is(err, stakeclient.ErrStakeRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, types.ErrRelationshipMismatch),
		errors.Is(err, services.ErrNoPayoutDestination),
		errors.Is(err, services.ErrInvalidDestination),
		errors.Is(err, services.ErrInvalidDistributor):
		return http.StatusBadRequest
	case errors.As(err, &payoutErr), errors.Is(err, services.ErrStakeLedger):
		return http.StatusBadGateway
	case types.IsConfigurationError(err), errors.Is(err, services.ErrAuthorityMismatch):
		return http.StatusUnprocessableEntity
	case db.IsStaleRecordError(err), db.IsDuplicateKeyError(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusBadGateway:
		return "UPSTREAM_ERROR"
	case http.StatusUnprocessableEntity:
		return "INVALID_CONFIGURATION"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
