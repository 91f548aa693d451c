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

// Compile-time checks
var (
	_ repositories.VideoRepository    = (*VideoRepository)(nil)
	_ repositories.DocumentRepository = (*DocumentRepository)(nil)
)

// VideoRepository handles MongoDB operations for Video
type VideoRepository struct {
	collection *mongo.Collection
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{
		collection: db.Collection("videos"),
	}
}

// Create inserts a new video
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	video.ID = primitive.NewObjectID()
	video.CreatedAt = time.Now()
	video.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, video)
	return err
}

// FindByID finds a video by ID
func (r *VideoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	var video models.Video
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &video, nil
}

// FindByCourse retrieves the videos of a course in display order
func (r *VideoRepository) FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Video, error) {
	opts := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"courseId": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []*models.Video
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []*models.Video{}
	}
	return videos, nil
}

// Delete deletes a video by ID
func (r *VideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DocumentRepository handles MongoDB operations for Document
type DocumentRepository struct {
	collection *mongo.Collection
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{
		collection: db.Collection("documents"),
	}
}

// Create inserts a new document
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// FindByID finds a document by ID
func (r *DocumentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	var doc models.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &doc, nil
}

// FindByCourse retrieves the documents of a course
func (r *DocumentRepository) FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Document, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"courseId": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*models.Document
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	return docs, nil
}

// Delete deletes a document by ID
func (r *DocumentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
