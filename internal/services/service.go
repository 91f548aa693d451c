package services

import (
	"context"
	"io"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/pkg/razorpay"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RazorpayGateway is the slice of the Razorpay client the payment flow uses
type RazorpayGateway interface {
	CreateOrder(amountPaise int64, receipt string, notes map[string]interface{}) (*razorpay.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// Viewer identifies the authenticated caller for enrollment-gated reads
type Viewer struct {
	StudentID primitive.ObjectID
	Role      string
}

// IsAdmin reports whether the viewer bypasses enrollment gates
func (v Viewer) IsAdmin() bool {
	return v.Role == models.RoleAdmin
}

// DocumentStream is an open proxied download; the caller owns Body.
type DocumentStream struct {
	Body        io.ReadCloser
	ContentType string
	FileName    string
	Size        int64
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	RegisterStudent(ctx context.Context, req *models.RegisterRequest) (*models.Student, error)
	LoginStudent(ctx context.Context, email, password string) (*models.TokenResponse, error)
	LoginAdmin(ctx context.Context, email, password string) (*models.TokenResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// CatalogService defines the interface for course and test-series management
type CatalogService interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourse(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	ListCourses(ctx context.Context, activeOnly bool) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id primitive.ObjectID) error
	CreateTestSeries(ctx context.Context, series *models.TestSeries) error
	GetTestSeries(ctx context.Context, id primitive.ObjectID) (*models.TestSeries, error)
	ListTestSeries(ctx context.Context, activeOnly bool) ([]*models.TestSeries, error)
	UpdateTestSeries(ctx context.Context, series *models.TestSeries) error
	DeleteTestSeries(ctx context.Context, id primitive.ObjectID) error
}

// PaymentService defines the interface for the Razorpay enrollment flow
type PaymentService interface {
	CreateOrder(ctx context.Context, studentID primitive.ObjectID, courseID primitive.ObjectID) (*models.OrderResponse, error)
	VerifyPayment(ctx context.Context, studentID primitive.ObjectID, req *models.VerifyPaymentRequest) (*models.EnrollmentResult, error)
	ListLedger(ctx context.Context, page, limit int) ([]*models.PaymentRecord, error)
}

// UpiPaymentService defines the interface for the manual UPI/UTR flow
type UpiPaymentService interface {
	InitiatePublic(ctx context.Context, req *models.PublicInitiateRequest) (*models.PublicInitiateResponse, error)
	SubmitUTR(ctx context.Context, studentID primitive.ObjectID, courseID primitive.ObjectID, utrNumber string) (*models.UpiPayment, error)
	Approve(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.UpiPayment, error)
	Reject(ctx context.Context, id primitive.ObjectID) (*models.UpiPayment, error)
	ListByStatus(ctx context.Context, status string, page, limit int) ([]*models.UpiPayment, error)
}

// ContentService defines the interface for enrollment-gated content delivery
type ContentService interface {
	ListCourseVideos(ctx context.Context, viewer Viewer, courseID primitive.ObjectID) ([]*models.Video, error)
	VideoPlaybackURL(ctx context.Context, viewer Viewer, courseID, videoID primitive.ObjectID) (*models.Video, string, error)
	OpenDocument(ctx context.Context, viewer Viewer, documentID primitive.ObjectID) (*DocumentStream, error)
	RegisterVideo(ctx context.Context, video *models.Video) error
	RegisterDocument(ctx context.Context, doc *models.Document) error
}

// StudentService defines the interface for student profile and admin operations
type StudentService interface {
	GetProfile(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	ListEnrollments(ctx context.Context, id primitive.ObjectID) ([]models.EnrolledCourse, error)
	ListStudents(ctx context.Context, page, limit int) ([]*models.Student, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// AdService defines the interface for homepage ad management
type AdService interface {
	Create(ctx context.Context, ad *models.HomepageAd) error
	ListActive(ctx context.Context) ([]*models.HomepageAd, error)
	ListAll(ctx context.Context) ([]*models.HomepageAd, error)
	Update(ctx context.Context, ad *models.HomepageAd) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
