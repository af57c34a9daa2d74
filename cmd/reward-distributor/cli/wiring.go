package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/authority"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/clients/custodyclient"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/clients/stakeclient"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db"
	dbmodel "github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/payout"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/queue"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/services"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/utils/poller"
	"github.com/rs/zerolog/log"
)

const memoryLedgerProvisionInterval = 30 * time.Second

type components struct {
	service   *services.Service
	database  *db.Database
	publisher queue.EventPublisher
	pollers   []*poller.Poller
}

func (c *components) close(ctx context.Context) {
	for _, p := range c.pollers {
		p.Stop()
	}
	c.publisher.Shutdown()
	if err := c.database.Close(ctx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("error while closing db client")
	}
}

func newComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return nil, fmt.Errorf("error while setting up reward db model: %w", err)
	}

	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		return nil, fmt.Errorf("error while creating db client: %w", err)
	}
	var dbClient db.DbInterface = db.NewDbWithMetrics(database)

	stakeClient := stakeclient.NewStakeClientWithMetrics(stakeclient.New(&cfg.StakeLedger))

	deriver, err := authority.NewDeriver(cfg.Authority.ProgramID)
	if err != nil {
		return nil, err
	}

	c := &components{database: database}

	ledger, err := c.newTokenLedger(ctx, cfg, dbClient)
	if err != nil {
		return nil, err
	}

	c.publisher, err = queue.NewEventPublisher(cfg.Queue)
	if err != nil {
		return nil, fmt.Errorf("error while creating event publisher: %w", err)
	}

	c.service = services.NewService(cfg, dbClient, stakeClient, ledger, deriver, c.publisher)
	return c, nil
}

func (c *components) newTokenLedger(ctx context.Context, cfg *config.Config, dbClient db.DbInterface) (payout.TokenLedger, error) {
	if cfg.Custody.Mode != config.CustodyModeMemory {
		return custodyclient.NewLedgerWithMetrics(custodyclient.New(&cfg.Custody)), nil
	}

	log.Ctx(ctx).Warn().Msg("custody runs in memory mode, balances are lost on restart")

	ledger := custodyclient.NewMemoryLedger()
	provision := func(ctx context.Context) error {
		distributors, err := dbClient.FindRewardDistributors(ctx)
		if err != nil {
			return err
		}
		return ledger.Provision(distributors, cfg.Custody.MemoryTreasuryBalance)
	}
	if err := provision(ctx); err != nil {
		return nil, fmt.Errorf("error while provisioning memory ledger: %w", err)
	}

	// distributors created after startup are picked up by the next round
	provisioner := poller.NewPoller("custody-provision", memoryLedgerProvisionInterval, provision)
	go provisioner.Start(ctx)
	c.pollers = append(c.pollers, provisioner)

	return custodyclient.NewLedgerWithMetrics(ledger), nil
}

func loadConfig() (*config.Config, error) {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}
	return cfg, nil
}
