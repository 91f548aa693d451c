package mongodb

import (
	"context"
	"time"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PaymentRecordRepository implements the interface
var _ repositories.PaymentRecordRepository = (*PaymentRecordRepository)(nil)

// PaymentRecordRepository handles MongoDB operations for the legacy flat
// ledger. The collection keeps its historical "users" name so existing
// reporting exports keep working.
type PaymentRecordRepository struct {
	collection *mongo.Collection
}

// NewPaymentRecordRepository creates a new PaymentRecordRepository
func NewPaymentRecordRepository(db *mongo.Database) *PaymentRecordRepository {
	return &PaymentRecordRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new ledger row. Rows are append-only.
func (r *PaymentRecordRepository) Create(ctx context.Context, record *models.PaymentRecord) error {
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByPaymentID retrieves the ledger row for a Razorpay payment id
func (r *PaymentRecordRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	err := r.collection.FindOne(ctx, bson.M{"razorpayPaymentId": paymentID}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll retrieves ledger rows, newest first
func (r *PaymentRecordRepository) FindAll(ctx context.Context, page, limit int) ([]*models.PaymentRecord, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*models.PaymentRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.PaymentRecord{}
	}
	return records, nil
}

// Count returns the total number of ledger rows
func (r *PaymentRecordRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
