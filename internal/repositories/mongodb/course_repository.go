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

// Compile-time check to ensure CourseRepository implements the interface
var _ repositories.CourseRepository = (*CourseRepository)(nil)

// CourseRepository handles MongoDB operations for Course
type CourseRepository struct {
	collection *mongo.Collection
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{
		collection: db.Collection("courses"),
	}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	course.ID = primitive.NewObjectID()
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, course)
	return err
}

// FindByID finds a course by ID
func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &course, nil
}

// FindAll retrieves courses, optionally only active ones
func (r *CourseRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.Course, error) {
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

	var courses []*models.Course
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now()
	filter := bson.M{"_id": course.ID}
	update := bson.M{"$set": course}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the total number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
