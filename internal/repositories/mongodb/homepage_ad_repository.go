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

// Compile-time check to ensure HomepageAdRepository implements the interface
var _ repositories.HomepageAdRepository = (*HomepageAdRepository)(nil)

// HomepageAdRepository handles MongoDB operations for HomepageAd
type HomepageAdRepository struct {
	collection *mongo.Collection
}

// NewHomepageAdRepository creates a new HomepageAdRepository
func NewHomepageAdRepository(db *mongo.Database) *HomepageAdRepository {
	return &HomepageAdRepository{
		collection: db.Collection("homepageads"),
	}
}

// Create inserts a new ad
func (r *HomepageAdRepository) Create(ctx context.Context, ad *models.HomepageAd) error {
	ad.ID = primitive.NewObjectID()
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, ad)
	return err
}

// FindActive retrieves active ads in display order
func (r *HomepageAdRepository) FindActive(ctx context.Context) ([]*models.HomepageAd, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

// FindAll retrieves all ads in display order
func (r *HomepageAdRepository) FindAll(ctx context.Context) ([]*models.HomepageAd, error) {
	return r.find(ctx, bson.M{})
}

func (r *HomepageAdRepository) find(ctx context.Context, filter bson.M) ([]*models.HomepageAd, error) {
	opts := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ads []*models.HomepageAd
	if err = cursor.All(ctx, &ads); err != nil {
		return nil, err
	}
	if ads == nil {
		ads = []*models.HomepageAd{}
	}
	return ads, nil
}

// Update updates an existing ad
func (r *HomepageAdRepository) Update(ctx context.Context, ad *models.HomepageAd) error {
	ad.UpdatedAt = time.Now()
	filter := bson.M{"_id": ad.ID}
	update := bson.M{"$set": ad}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes an ad by ID
func (r *HomepageAdRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
