package db

import (
	"context"
	"errors"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (db *Database) SaveNewRewardDistributor(ctx context.Context, distributor *model.RewardDistributor) error {
	_, err := db.collection(model.RewardDistributorsCollection).InsertOne(ctx, distributor)
	if err != nil {
		return toDuplicateKeyError(err, distributor.ID, "reward distributor already exists")
	}
	return nil
}

func (db *Database) GetRewardDistributor(ctx context.Context, id string) (*model.RewardDistributor, error) {
	res := db.collection(model.RewardDistributorsCollection).FindOne(ctx, bson.M{"_id": id})

	var distributor model.RewardDistributor
	if err := res.Decode(&distributor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     id,
				Message: "reward distributor not found",
			}
		}
		return nil, err
	}

	return &distributor, nil
}

func (db *Database) FindRewardDistributors(ctx context.Context) ([]*model.RewardDistributor, error) {
	cursor, err := db.collection(model.RewardDistributorsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var distributors []*model.RewardDistributor
	if err := cursor.All(ctx, &distributors); err != nil {
		return nil, err
	}

	return distributors, nil
}
