package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const readHeaderTimeout = 5 * time.Second

// ClaimService is the part of services.Service the API exposes.
type ClaimService interface {
	Ping(ctx context.Context) error
	Claim(ctx context.Context, req services.ClaimRequest) (*services.ClaimOutcome, error)
	InitRewardDistributor(ctx context.Context, req services.InitRewardDistributorRequest) (*model.RewardDistributor, error)
	InitRewardEntry(ctx context.Context, distributorID, stakedAssetID, destination string) (*model.RewardEntry, error)
	GetRewardDistributor(ctx context.Context, id string) (*model.RewardDistributor, error)
	GetRewardEntry(ctx context.Context, id string) (*model.RewardEntry, error)
	GetRewardClaims(ctx context.Context, entryID string, limit int64) ([]*model.RewardClaim, error)
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.ServerConfig, svc ClaimService) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address(),
			Handler:           NewRouter(svc, cfg.RequestTimeout),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

func NewRouter(svc ClaimService, requestTimeout time.Duration) http.Handler {
	h := &handler{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(traceRequest)
	r.Use(recordDuration)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", h.health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/reward-distributors", h.initRewardDistributor)
		r.Get("/reward-distributors/{distributorID}", h.getRewardDistributor)

		r.Post("/reward-entries", h.initRewardEntry)
		r.Get("/reward-entries/{entryID}", h.getRewardEntry)
		r.Get("/reward-entries/{entryID}/claims", h.getRewardClaims)
		r.Post("/reward-entries/{entryID}/claim", h.claim)
	})

	return r
}

// Start blocks serving requests until the server is shut down.
func (s *Server) Start() error {
	log.Info().Str("address", s.httpServer.Addr).Msg("Starting API server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
