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

// Compile-time check to ensure TestSeriesRepository implements the interface
var _ repositories.TestSeriesRepository = (*TestSeriesRepository)(nil)

// TestSeriesRepository handles MongoDB operations for TestSeries
type TestSeriesRepository struct {
	collection *mongo.Collection
}

// NewTestSeriesRepository creates a new TestSeriesRepository
func NewTestSeriesRepository(db *mongo.Database) *TestSeriesRepository {
	return &TestSeriesRepository{
		collection: db.Collection("testseries"),
	}
}

// Create inserts a new test series
func (r *TestSeriesRepository) Create(ctx context.Context, series *models.TestSeries) error {
	series.ID = primitive.NewObjectID()
	series.CreatedAt = time.Now()
	series.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, series)
	return err
}

// FindByID finds a test series by ID
func (r *TestSeriesRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.TestSeries, error) {
	var series models.TestSeries
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&series)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &series, nil
}

// FindAll retrieves test series, optionally only active ones
func (r *TestSeriesRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.TestSeries, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var series []*models.TestSeries
	if err = cursor.All(ctx, &series); err != nil {
		return nil, err
	}
	if series == nil {
		series = []*models.TestSeries{}
	}
	return series, nil
}

// Update updates an existing test series
func (r *TestSeriesRepository) Update(ctx context.Context, series *models.TestSeries) error {
	series.UpdatedAt = time.Now()
	filter := bson.M{"_id": series.ID}
	update := bson.M{"$set": series}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a test series by ID
func (r *TestSeriesRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
