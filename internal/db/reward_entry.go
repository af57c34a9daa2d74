package db

import (
	"context"
	"errors"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveNewRewardEntry(ctx context.Context, entry *model.RewardEntry) error {
	_, err := db.collection(model.RewardEntriesCollection).InsertOne(ctx, entry)
	if err != nil {
		return toDuplicateKeyError(err, entry.ID, "reward entry already exists")
	}
	return nil
}

func (db *Database) GetRewardEntry(ctx context.Context, id string) (*model.RewardEntry, error) {
	res := db.collection(model.RewardEntriesCollection).FindOne(ctx, bson.M{"_id": id})

	var entry model.RewardEntry
	if err := res.Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     id,
				Message: "reward entry not found",
			}
		}
		return nil, err
	}

	return &entry, nil
}

func (db *Database) UpdateRewardEntryPayoutDestination(ctx context.Context, id, destination string) error {
	res, err := db.collection(model.RewardEntriesCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"payout_destination": destination}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     id,
			Message: "reward entry not found",
		}
	}
	return nil
}

func (db *Database) FindPayableRewardEntries(ctx context.Context, distributorID string) ([]*model.RewardEntry, error) {
	filter := bson.M{
		"reward_distributor_id": distributorID,
		"payout_destination":    bson.M{"$exists": true, "$ne": ""},
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := db.collection(model.RewardEntriesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.RewardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
