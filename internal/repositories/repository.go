package repositories

import (
	"context"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentRepository defines the interface for student data operations.
//
// The enrollment mutators are conditional single-document updates: each one
// reports whether the guarded write actually happened, so callers can treat
// "matched nothing" as a state conflict instead of re-reading and racing.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Student, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	HasPaidEnrollment(ctx context.Context, studentID, courseID primitive.ObjectID) (bool, error)
	// AppendPendingEnrollmentIfAbsent pushes a pending sub-record unless any
	// sub-record for the course already exists.
	AppendPendingEnrollmentIfAbsent(ctx context.Context, studentID primitive.ObjectID, enrollment models.EnrolledCourse) (bool, error)
	// AppendPaidEnrollmentIfAbsent pushes a paid sub-record unless a paid
	// sub-record for the course already exists.
	AppendPaidEnrollmentIfAbsent(ctx context.Context, studentID primitive.ObjectID, enrollment models.EnrolledCourse) (bool, error)
	// UpgradePendingEnrollment flips an existing pending sub-record for the
	// course to paid, stamping receipt and amount.
	UpgradePendingEnrollment(ctx context.Context, studentID, courseID primitive.ObjectID, receiptNumber string, amount int64) (bool, error)
}

// AdminRepository defines the interface for admin user data operations
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
}

// CourseRepository defines the interface for course catalog operations
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// TestSeriesRepository defines the interface for test-series catalog operations
type TestSeriesRepository interface {
	Create(ctx context.Context, series *models.TestSeries) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.TestSeries, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*models.TestSeries, error)
	Update(ctx context.Context, series *models.TestSeries) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// VideoRepository defines the interface for video metadata operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
	FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Video, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// DocumentRepository defines the interface for document metadata operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Document, error)
	FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Document, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UpiPaymentRepository defines the interface for UTR submission rows.
// MarkApproved and MarkRejected are conditional transitions guarded on the
// pending status; they report false when the row was not pending.
type UpiPaymentRepository interface {
	Create(ctx context.Context, payment *models.UpiPayment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UpiPayment, error)
	FindPendingByStudentAndCourse(ctx context.Context, studentID, courseID primitive.ObjectID) (*models.UpiPayment, error)
	FindByStatus(ctx context.Context, status string, page, limit int) ([]*models.UpiPayment, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	MarkApproved(ctx context.Context, id primitive.ObjectID, approvedBy string) (bool, error)
	MarkRejected(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// PaymentRecordRepository defines the interface for the legacy flat ledger
type PaymentRecordRepository interface {
	Create(ctx context.Context, record *models.PaymentRecord) error
	FindByPaymentID(ctx context.Context, paymentID string) (*models.PaymentRecord, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.PaymentRecord, error)
	Count(ctx context.Context) (int64, error)
}

// HomepageAdRepository defines the interface for homepage ad operations
type HomepageAdRepository interface {
	Create(ctx context.Context, ad *models.HomepageAd) error
	FindActive(ctx context.Context) ([]*models.HomepageAd, error)
	FindAll(ctx context.Context) ([]*models.HomepageAd, error)
	Update(ctx context.Context, ad *models.HomepageAd) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OTPRepository defines the interface for one-time codes. Expiry is enforced
// both by the TTL index and by the FindValid query.
type OTPRepository interface {
	Create(ctx context.Context, otp *models.OTP) error
	FindValid(ctx context.Context, email, code, purpose string) (*models.OTP, error)
	DeleteByEmail(ctx context.Context, email, purpose string) error
}
