package mongodb

import (
	"context"
	"time"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure OTPRepository implements the interface
var _ repositories.OTPRepository = (*OTPRepository)(nil)

// OTPRepository handles MongoDB operations for one-time codes
type OTPRepository struct {
	collection *mongo.Collection
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{
		collection: db.Collection("otps"),
	}
}

// Create inserts a new code
func (r *OTPRepository) Create(ctx context.Context, otp *models.OTP) error {
	otp.ID = primitive.NewObjectID()
	otp.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, otp)
	return err
}

// FindValid finds a matching, unexpired code. The TTL reaper runs on its own
// schedule, so the query checks expiry itself as well.
func (r *OTPRepository) FindValid(ctx context.Context, email, code, purpose string) (*models.OTP, error) {
	filter := bson.M{
		"email":     email,
		"code":      code,
		"purpose":   purpose,
		"expiresAt": bson.M{"$gt": time.Now()},
	}
	var otp models.OTP
	err := r.collection.FindOne(ctx, filter).Decode(&otp)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &otp, nil
}

// DeleteByEmail removes all codes issued to an email for a purpose
func (r *OTPRepository) DeleteByEmail(ctx context.Context, email, purpose string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"email": email, "purpose": purpose})
	return err
}
