package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/services"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	defaultClaimsLimit = 20
	maxClaimsLimit     = 100
)

type handler struct {
	svc ClaimService
}

type claimRequest struct {
	Destination string `json:"destination"`
}

type initRewardEntryRequest struct {
	RewardDistributorID string `json:"reward_distributor_id"`
	StakedAssetID       string `json:"staked_asset_id"`
	PayoutDestination   string `json:"payout_destination"`
}

type initRewardDistributorRequest struct {
	StakePoolID           string  `json:"stake_pool_id"`
	RewardTokenID         string  `json:"reward_token_id"`
	RewardAmount          uint64  `json:"reward_amount"`
	RewardDurationSeconds uint64  `json:"reward_duration_seconds"`
	Kind                  string  `json:"kind"`
	MaxSupply             *uint64 `json:"max_supply,omitempty"`
	TreasuryAccount       string  `json:"treasury_account,omitempty"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			ErrorCode: errorCode(http.StatusServiceUnavailable),
			Message:   "database is not reachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) claim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	// an empty body claims to the stored payout destination
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	outcome, err := h.svc.Claim(r.Context(), services.ClaimRequest{
		EntryID:     chi.URLParam(r, "entryID"),
		Destination: req.Destination,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *handler) getRewardEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.svc.GetRewardEntry(r.Context(), chi.URLParam(r, "entryID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *handler) getRewardClaims(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultClaimsLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 || parsed > maxClaimsLimit {
			h.writeError(w, r, fmt.Errorf("%w: limit must be between 1 and %d", errBadRequest, maxClaimsLimit))
			return
		}
		limit = parsed
	}

	claims, err := h.svc.GetRewardClaims(r.Context(), chi.URLParam(r, "entryID"), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func (h *handler) initRewardEntry(w http.ResponseWriter, r *http.Request) {
	var req initRewardEntryRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.RewardDistributorID == "" || req.StakedAssetID == "" {
		h.writeError(w, r, fmt.Errorf("%w: reward_distributor_id and staked_asset_id are required", errBadRequest))
		return
	}

	entry, err := h.svc.InitRewardEntry(r.Context(), req.RewardDistributorID, req.StakedAssetID, req.PayoutDestination)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *handler) getRewardDistributor(w http.ResponseWriter, r *http.Request) {
	distributor, err := h.svc.GetRewardDistributor(r.Context(), chi.URLParam(r, "distributorID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, distributor)
}

func (h *handler) initRewardDistributor(w http.ResponseWriter, r *http.Request) {
	var req initRewardDistributorRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	kind, err := types.ParseDistributorKind(req.Kind)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	distributor, err := h.svc.InitRewardDistributor(r.Context(), services.InitRewardDistributorRequest{
		StakePoolID:           req.StakePoolID,
		RewardTokenID:         req.RewardTokenID,
		RewardAmount:          req.RewardAmount,
		RewardDurationSeconds: req.RewardDurationSeconds,
		Kind:                  kind,
		MaxSupply:             req.MaxSupply,
		TreasuryAccount:       req.TreasuryAccount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, distributor)
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Ctx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{
		ErrorCode: errorCode(status),
		Message:   message,
	})
}

func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
