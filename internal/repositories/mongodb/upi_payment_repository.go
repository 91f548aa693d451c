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

// Compile-time check to ensure UpiPaymentRepository implements the interface
var _ repositories.UpiPaymentRepository = (*UpiPaymentRepository)(nil)

// UpiPaymentRepository handles MongoDB operations for UpiPayment
type UpiPaymentRepository struct {
	collection *mongo.Collection
}

// NewUpiPaymentRepository creates a new UpiPaymentRepository
func NewUpiPaymentRepository(db *mongo.Database) *UpiPaymentRepository {
	return &UpiPaymentRepository{
		collection: db.Collection("upipayments"),
	}
}

// Create inserts a new UTR submission. A duplicate UTR surfaces as a
// mongo duplicate-key error from the unique index.
func (r *UpiPaymentRepository) Create(ctx context.Context, payment *models.UpiPayment) error {
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, payment)
	return err
}

// FindByID finds a UTR submission by ID
func (r *UpiPaymentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.UpiPayment, error) {
	var payment models.UpiPayment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &payment, nil
}

// FindPendingByStudentAndCourse finds a pending submission for (student, course)
func (r *UpiPaymentRepository) FindPendingByStudentAndCourse(ctx context.Context, studentID, courseID primitive.ObjectID) (*models.UpiPayment, error) {
	filter := bson.M{
		"studentId": studentID,
		"courseId":  courseID,
		"status":    models.UpiStatusPending,
	}
	var payment models.UpiPayment
	err := r.collection.FindOne(ctx, filter).Decode(&payment)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &payment, nil
}

// FindByStatus retrieves submissions in a given status, oldest first
func (r *UpiPaymentRepository) FindByStatus(ctx context.Context, status string, page, limit int) ([]*models.UpiPayment, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": 1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []*models.UpiPayment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []*models.UpiPayment{}
	}
	return payments, nil
}

// CountByStatus counts submissions in a given status
func (r *UpiPaymentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// MarkApproved transitions pending -> approved. The status guard in the
// filter makes the transition atomic; a second approval matches nothing.
func (r *UpiPaymentRepository) MarkApproved(ctx context.Context, id primitive.ObjectID, approvedBy string) (bool, error) {
	now := time.Now()
	filter := bson.M{"_id": id, "status": models.UpiStatusPending}
	update := bson.M{"$set": bson.M{
		"status":     models.UpiStatusApproved,
		"approvedBy": approvedBy,
		"approvedAt": now,
		"updatedAt":  now,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// MarkRejected transitions pending -> rejected, clearing approver fields.
func (r *UpiPaymentRepository) MarkRejected(ctx context.Context, id primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": id, "status": models.UpiStatusPending}
	update := bson.M{
		"$set":   bson.M{"status": models.UpiStatusRejected, "updatedAt": time.Now()},
		"$unset": bson.M{"approvedBy": "", "approvedAt": ""},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
