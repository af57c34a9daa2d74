package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type index struct {
	// Keys is ordered, compound index key order matters
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	RewardDistributorsCollection: {
		{Keys: bson.D{{Key: "stake_pool_id", Value: 1}}, Unique: true},
	},
	RewardEntriesCollection: {
		{Keys: bson.D{{Key: "reward_distributor_id", Value: 1}, {Key: "staked_asset_id", Value: 1}}, Unique: true},
	},
	RewardClaimsCollection: {
		{Keys: bson.D{{Key: "reward_entry_id", Value: 1}, {Key: "claimed_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	},
}

// Setup creates the collections and indexes the distributor relies on.
// It is safe to run on every start.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	clientOps := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		clientOps.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	database := client.Database(cfg.DbName)

	for name, idxs := range collections {
		if err := createCollection(ctx, database, name); err != nil {
			return err
		}
		for _, idx := range idxs {
			if err := createIndex(ctx, database, name, idx); err != nil {
				return err
			}
		}
	}

	log.Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) error {
	err := database.CreateCollection(ctx, collectionName)
	if err == nil {
		log.Debug().Str("collection", collectionName).Msg("Collection created")
		return nil
	}

	var cmdErr mongo.CommandError
	// NamespaceExists
	if errors.As(err, &cmdErr) && cmdErr.Code == 48 {
		return nil
	}

	return fmt.Errorf("failed to create collection %s: %w", collectionName, err)
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	indexModel := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	return nil
}
