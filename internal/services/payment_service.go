package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ravij-p/sandhan-backend/internal/config"
	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/repositories"
	"github.com/Ravij-p/sandhan-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PaymentServiceImpl implements PaymentService
var _ PaymentService = (*PaymentServiceImpl)(nil)

// PaymentServiceImpl runs the Razorpay half of the reconciliation flow:
// order issuance, signature verification, and the paired ledger/enrollment
// writes that grant access.
type PaymentServiceImpl struct {
	studentRepo repositories.StudentRepository
	courseRepo  repositories.CourseRepository
	ledgerRepo  repositories.PaymentRecordRepository
	gateway     RazorpayGateway
	cfg         *config.Config
}

func NewPaymentService(
	studentRepo repositories.StudentRepository,
	courseRepo repositories.CourseRepository,
	ledgerRepo repositories.PaymentRecordRepository,
	gateway RazorpayGateway,
	cfg *config.Config,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		ledgerRepo:  ledgerRepo,
		gateway:     gateway,
		cfg:         cfg,
	}
}

// CreateOrder validates the purchase and issues a Razorpay order. No
// persistent state is written on this path.
func (s *PaymentServiceImpl) CreateOrder(ctx context.Context, studentID, courseID primitive.ObjectID) (*models.OrderResponse, error) {
	course, err := s.loadActiveCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.studentRepo.HasPaidEnrollment(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	payable := utils.GrossUpAmount(course.Price, s.cfg.Razorpay.FeePercent, s.cfg.Razorpay.GSTPercent)
	receipt := fmt.Sprintf("rcpt_%d", time.Now().UnixNano())
	order, err := s.gateway.CreateOrder(utils.ToPaise(payable), receipt, map[string]interface{}{
		"courseId":  courseID.Hex(),
		"studentId": studentID.Hex(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	slog.Info("razorpay order created", "orderId", order.ID, "courseId", courseID, "studentId", studentID, "amount", payable)
	return &models.OrderResponse{
		OrderID:     order.ID,
		Amount:      payable,
		AmountPaise: order.Amount,
		Currency:    order.Currency,
		Key:         s.gateway.KeyID(),
		Course:      course,
	}, nil
}

// VerifyPayment checks the checkout signature and, on success, writes the
// legacy ledger row and flips the enrollment to paid. The signature check
// fails closed: nothing is written on a mismatch.
//
// The ledger row is attempted before the enrollment so the first purchase
// always has a matching ledger row even if the second write is lost. Repeat
// buyers hit the ledger's legacy unique mobile index; for them the ledger row
// is lost but the enrollment is still granted.
func (s *PaymentServiceImpl) VerifyPayment(ctx context.Context, studentID primitive.ObjectID, req *models.VerifyPaymentRequest) (*models.EnrollmentResult, error) {
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		return nil, ErrNotFound
	}
	course, err := s.loadActiveCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		slog.Warn("payment signature mismatch", "orderId", req.RazorpayOrderID, "studentId", studentID)
		return nil, ErrSignatureMismatch
	}

	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	// Replay guard keyed on the payment proof itself. The ledger's legacy
	// mobile uniqueness must not refuse a repeat buyer purchasing a second
	// course.
	if _, err := s.ledgerRepo.FindByPaymentID(ctx, req.RazorpayPaymentID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check ledger: %w", err)
	}

	amount := utils.GrossUpAmount(course.Price, s.cfg.Razorpay.FeePercent, s.cfg.Razorpay.GSTPercent)
	receipt := utils.GenerateReceiptNumber(time.Now())

	record := &models.PaymentRecord{
		Name:              student.Name,
		Email:             student.Email,
		Mobile:            student.Mobile,
		CourseID:          course.ID,
		CourseTitle:       course.Title,
		Amount:            amount,
		ReceiptNumber:     receipt,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
	}
	if err := s.ledgerRepo.Create(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// The unique mobile index rejects every row after a student's
			// first. The enrollment is still owed: record the divergence and
			// keep going.
			slog.Warn("ledger row lost to legacy unique index",
				"studentId", studentID, "courseId", course.ID,
				"paymentId", req.RazorpayPaymentID, "receipt", receipt)
		} else {
			return nil, fmt.Errorf("failed to write ledger row: %w", err)
		}
	}

	enrollment := models.EnrolledCourse{
		Course:            course.ID,
		EnrolledAt:        time.Now(),
		PaymentStatus:     models.EnrollmentPaid,
		ReceiptNumber:     receipt,
		Amount:            amount,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
	}
	appended, err := s.studentRepo.AppendPaidEnrollmentIfAbsent(ctx, studentID, enrollment)
	if err != nil {
		return nil, fmt.Errorf("failed to grant enrollment: %w", err)
	}
	if !appended {
		return nil, ErrAlreadyEnrolled
	}

	slog.Info("razorpay payment reconciled",
		"studentId", studentID, "courseId", course.ID,
		"paymentId", req.RazorpayPaymentID, "receipt", receipt)
	return &models.EnrollmentResult{ReceiptNumber: receipt, Enrollment: &enrollment}, nil
}

// ListLedger pages through the legacy flat ledger
func (s *PaymentServiceImpl) ListLedger(ctx context.Context, page, limit int) ([]*models.PaymentRecord, error) {
	records, err := s.ledgerRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger: %w", err)
	}
	return records, nil
}

func (s *PaymentServiceImpl) loadActiveCourse(ctx context.Context, courseID primitive.ObjectID) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if !course.IsActive {
		return nil, ErrCourseInactive
	}
	return course, nil
}
