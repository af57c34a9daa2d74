package db

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrCounterOutOfRange is returned for counters mongo cannot store as int64.
var ErrCounterOutOfRange = errors.New("counter does not fit a stored int64")

func checkClaimCounters(claim *model.RewardClaim) error {
	counters := map[string]uint64{
		"amount":                  claim.Amount,
		"seconds_credited":        claim.SecondsCredited,
		"rewards_issued":          claim.RewardsIssued,
		"reward_seconds_received": claim.RewardSecondsReceived,
		"reward_amount_received":  claim.RewardAmountReceived,
	}
	for name, value := range counters {
		if value > math.MaxInt64 {
			return fmt.Errorf("%w: %s of claim %s is %d", ErrCounterOutOfRange, name, claim.ID, value)
		}
	}
	return nil
}

// ReserveClaim applies the counters of claim to its distributor and entry and
// journals it as pending, all in one transaction. The filters on the previous
// counters make a concurrent reservation of the same records lose with a
// StaleRecordError before anything is paid.
func (db *Database) ReserveClaim(ctx context.Context, claim *model.RewardClaim) error {
	if err := checkClaimCounters(claim); err != nil {
		return err
	}
	claim.Status = model.ClaimStatusPending

	return db.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		distributorFilter := bson.M{
			"_id":            claim.RewardDistributorID,
			"rewards_issued": claim.PrevRewardsIssued,
		}
		res, err := db.collection(model.RewardDistributorsCollection).UpdateOne(sessCtx,
			distributorFilter,
			bson.M{"$set": bson.M{"rewards_issued": claim.RewardsIssued}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return &StaleRecordError{
				Key:     claim.RewardDistributorID,
				Message: "reward distributor changed since the claim was computed",
			}
		}

		entryFilter := bson.M{
			"_id":                     claim.RewardEntryID,
			"reward_distributor_id":   claim.RewardDistributorID,
			"reward_seconds_received": claim.PrevRewardSecondsReceived,
			"reward_amount_received":  claim.PrevRewardAmountReceived,
		}
		res, err = db.collection(model.RewardEntriesCollection).UpdateOne(sessCtx,
			entryFilter,
			bson.M{"$set": bson.M{
				"reward_seconds_received": claim.RewardSecondsReceived,
				"reward_amount_received":  claim.RewardAmountReceived,
			}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return &StaleRecordError{
				Key:     claim.RewardEntryID,
				Message: "reward entry changed since the claim was computed",
			}
		}

		if _, err := db.collection(model.RewardClaimsCollection).InsertOne(sessCtx, claim); err != nil {
			return toDuplicateKeyError(err, claim.ID, "reward claim already reserved")
		}

		return nil
	})
}

// ReleaseClaim takes back the counters of a pending claim whose payout failed.
// The counters are decremented rather than restored so reservations made on
// top of this one keep their own increments.
func (db *Database) ReleaseClaim(ctx context.Context, claim *model.RewardClaim) error {
	return db.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		res, err := db.collection(model.RewardClaimsCollection).UpdateOne(sessCtx,
			bson.M{"_id": claim.ID, "status": model.ClaimStatusPending},
			bson.M{"$set": bson.M{"status": model.ClaimStatusReleased}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return &NotFoundError{
				Key:     claim.ID,
				Message: "pending reward claim not found",
			}
		}

		amount := -int64(claim.Amount)
		seconds := -int64(claim.SecondsCredited)

		if _, err := db.collection(model.RewardDistributorsCollection).UpdateOne(sessCtx,
			bson.M{"_id": claim.RewardDistributorID},
			bson.M{"$inc": bson.M{"rewards_issued": amount}},
		); err != nil {
			return err
		}
		if _, err := db.collection(model.RewardEntriesCollection).UpdateOne(sessCtx,
			bson.M{"_id": claim.RewardEntryID},
			bson.M{"$inc": bson.M{
				"reward_seconds_received": seconds,
				"reward_amount_received":  amount,
			}},
		); err != nil {
			return err
		}

		claim.Status = model.ClaimStatusReleased
		return nil
	})
}

// SettleClaim marks a pending claim as paid.
func (db *Database) SettleClaim(ctx context.Context, claimID string) error {
	res, err := db.collection(model.RewardClaimsCollection).UpdateOne(ctx,
		bson.M{"_id": claimID, "status": model.ClaimStatusPending},
		bson.M{"$set": bson.M{"status": model.ClaimStatusSettled}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     claimID,
			Message: "pending reward claim not found",
		}
	}
	return nil
}

func (db *Database) withTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	session, err := db.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func (db *Database) GetRewardClaims(ctx context.Context, entryID string, limit int64) ([]*model.RewardClaim, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "claimed_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.RewardClaimsCollection).Find(ctx, bson.M{"reward_entry_id": entryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	claims := []*model.RewardClaim{}
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, err
	}

	return claims, nil
}
