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

// Compile-time check to ensure StudentRepository implements the interface
var _ repositories.StudentRepository = (*StudentRepository)(nil)

// StudentRepository handles MongoDB operations for Student
type StudentRepository struct {
	collection *mongo.Collection
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{
		collection: db.Collection("students"),
	}
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	student.ID = primitive.NewObjectID()
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()
	if student.EnrolledCourses == nil {
		student.EnrolledCourses = []models.EnrolledCourse{}
	}
	if student.PurchasedTestSeries == nil {
		student.PurchasedTestSeries = []models.PurchasedTestSeries{}
	}
	_, err := r.collection.InsertOne(ctx, student)
	return err
}

// FindByID finds a student by ID
func (r *StudentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var student models.Student
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &student, nil
}

// FindByEmail finds a student by email
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&student)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &student, nil
}

// FindAll retrieves students, newest first
func (r *StudentRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Student, error) {
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

	var students []*models.Student
	if err = cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	if students == nil {
		students = []*models.Student{}
	}
	return students, nil
}

// Count returns the total number of students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// Update updates an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now()
	filter := bson.M{"_id": student.ID}
	update := bson.M{"$set": student}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// UpdatePassword sets a new password hash for a student
func (r *StudentRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetActive soft-activates or soft-deactivates a student
func (r *StudentRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// HasPaidEnrollment reports whether the student holds a paid enrollment
// sub-record for the course.
func (r *StudentRepository) HasPaidEnrollment(ctx context.Context, studentID, courseID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id": studentID,
		"enrolledCourses": bson.M{"$elemMatch": bson.M{
			"course":        courseID,
			"paymentStatus": models.EnrollmentPaid,
		}},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AppendPendingEnrollmentIfAbsent pushes a pending sub-record in a single
// conditional update. The filter excludes students that already hold any
// sub-record for the course, so two concurrent initiations cannot both push.
func (r *StudentRepository) AppendPendingEnrollmentIfAbsent(ctx context.Context, studentID primitive.ObjectID, enrollment models.EnrolledCourse) (bool, error) {
	filter := bson.M{
		"_id":                    studentID,
		"enrolledCourses.course": bson.M{"$ne": enrollment.Course},
	}
	update := bson.M{
		"$push": bson.M{"enrolledCourses": enrollment},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// AppendPaidEnrollmentIfAbsent pushes a paid sub-record unless one already
// exists for the course. Pending ghost rows from the public UPI flow do not
// block the push; the paid-status guard is what matters.
func (r *StudentRepository) AppendPaidEnrollmentIfAbsent(ctx context.Context, studentID primitive.ObjectID, enrollment models.EnrolledCourse) (bool, error) {
	filter := bson.M{
		"_id": studentID,
		"enrolledCourses": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"course":        enrollment.Course,
			"paymentStatus": models.EnrollmentPaid,
		}}},
	}
	update := bson.M{
		"$push": bson.M{"enrolledCourses": enrollment},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// UpgradePendingEnrollment flips a pending sub-record to paid with the
// positional operator. Returns false when no pending sub-record matched.
func (r *StudentRepository) UpgradePendingEnrollment(ctx context.Context, studentID, courseID primitive.ObjectID, receiptNumber string, amount int64) (bool, error) {
	filter := bson.M{
		"_id": studentID,
		"enrolledCourses": bson.M{"$elemMatch": bson.M{
			"course":        courseID,
			"paymentStatus": models.EnrollmentPending,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"enrolledCourses.$.paymentStatus": models.EnrollmentPaid,
			"enrolledCourses.$.receiptNumber": receiptNumber,
			"enrolledCourses.$.amount":        amount,
			"enrolledCourses.$.enrolledAt":    time.Now(),
			"updatedAt":                       time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}
