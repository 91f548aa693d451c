package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the reconciliation flow depends on.
// The unique indexes are the only dependable duplicate guards in the system;
// everything softer is layered on top of them.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// Students: unique email (public UPI initiation upserts by email).
	_, err := db.Collection("students").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// UTR numbers are globally unique across all submissions.
	_, err = db.Collection("upipayments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "utrNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// Legacy ledger: historical unique constraints on mobile and receipt.
	_, err = db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "mobile", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "receiptNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	// OTPs expire via TTL on expiresAt.
	_, err = db.Collection("otps").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}
