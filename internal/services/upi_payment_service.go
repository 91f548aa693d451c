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
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure UpiPaymentServiceImpl implements UpiPaymentService
var _ UpiPaymentService = (*UpiPaymentServiceImpl)(nil)

// UpiPaymentServiceImpl runs the manual UPI half of the reconciliation flow:
// public initiation with eager account creation, UTR submission, and the
// admin approve/reject transitions that grant or deny access.
type UpiPaymentServiceImpl struct {
	studentRepo repositories.StudentRepository
	courseRepo  repositories.CourseRepository
	upiRepo     repositories.UpiPaymentRepository
	cfg         *config.Config
}

func NewUpiPaymentService(
	studentRepo repositories.StudentRepository,
	courseRepo repositories.CourseRepository,
	upiRepo repositories.UpiPaymentRepository,
	cfg *config.Config,
) *UpiPaymentServiceImpl {
	return &UpiPaymentServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		upiRepo:     upiRepo,
		cfg:         cfg,
	}
}

// InitiatePublic starts the UPI flow for an unauthenticated buyer. A student
// record is eagerly created (idempotently, by email) with a generated
// password, and a pending enrollment sub-record is appended before any
// payment proof exists, so credentials can be issued up front. The pending
// ghost row is filtered everywhere by payment status.
func (s *UpiPaymentServiceImpl) InitiatePublic(ctx context.Context, req *models.PublicInitiateRequest) (*models.PublicInitiateResponse, error) {
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		return nil, ErrNotFound
	}
	course, err := s.loadActiveCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	amount := utils.GrossUpAmount(course.Price, s.cfg.Razorpay.FeePercent, s.cfg.Razorpay.GSTPercent)

	var tempPassword string
	student, err := s.studentRepo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		enrolled, err := s.studentRepo.HasPaidEnrollment(ctx, student.ID, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if enrolled {
			return nil, ErrAlreadyEnrolled
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		tempPassword = utils.GenerateTempPassword()
		hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		student = &models.Student{
			Name:     req.Name,
			Email:    req.Email,
			Mobile:   req.Phone,
			Password: string(hash),
			IsActive: true,
		}
		if err := s.studentRepo.Create(ctx, student); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Lost a creation race; reload the winner.
				student, err = s.studentRepo.FindByEmail(ctx, req.Email)
				if err != nil {
					return nil, fmt.Errorf("failed to load student: %w", err)
				}
				tempPassword = ""
			} else {
				return nil, fmt.Errorf("failed to create student: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	_, err = s.studentRepo.AppendPendingEnrollmentIfAbsent(ctx, student.ID, models.EnrolledCourse{
		Course:        courseID,
		EnrolledAt:    time.Now(),
		PaymentStatus: models.EnrollmentPending,
		Amount:        amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record pending enrollment: %w", err)
	}

	upiURL := utils.BuildUPILink(s.cfg.UPI.VPA, s.cfg.UPI.PayeeName, amount, course.Title)
	slog.Info("public upi payment initiated", "email", req.Email, "courseId", courseID, "amount", amount)

	return &models.PublicInitiateResponse{
		UpiURL: upiURL,
		Amount: amount,
		PreCreated: &models.PreCreatedStudent{
			StudentID:    student.ID.Hex(),
			TempPassword: tempPassword,
		},
	}, nil
}

// SubmitUTR records manual payment proof for a course. A rejected earlier
// submission does not block a new UTR; only a paid enrollment or a pending
// row does.
func (s *UpiPaymentServiceImpl) SubmitUTR(ctx context.Context, studentID, courseID primitive.ObjectID, utrNumber string) (*models.UpiPayment, error) {
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

	_, err = s.upiRepo.FindPendingByStudentAndCourse(ctx, studentID, courseID)
	if err == nil {
		return nil, ErrPendingExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check pending submissions: %w", err)
	}

	payment := &models.UpiPayment{
		StudentID: studentID,
		CourseID:  courseID,
		Amount:    utils.GrossUpAmount(course.Price, s.cfg.Razorpay.FeePercent, s.cfg.Razorpay.GSTPercent),
		UTRNumber: utrNumber,
		Status:    models.UpiStatusPending,
	}
	if err := s.upiRepo.Create(ctx, payment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUTR
		}
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	slog.Info("utr submitted", "studentId", studentID, "courseId", courseID, "utr", utrNumber)
	return payment, nil
}

// Approve transitions a pending submission to approved and grants the
// enrollment. The status transition is atomic; a row that is no longer
// pending fails with ErrNotPending and nothing else is touched.
func (s *UpiPaymentServiceImpl) Approve(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.UpiPayment, error) {
	payment, err := s.upiRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}

	ok, err := s.upiRepo.MarkApproved(ctx, id, approvedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to approve submission: %w", err)
	}
	if !ok {
		return nil, ErrNotPending
	}

	receipt := utils.GenerateReceiptNumber(time.Now())
	upgraded, err := s.studentRepo.UpgradePendingEnrollment(ctx, payment.StudentID, payment.CourseID, receipt, payment.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade enrollment: %w", err)
	}
	if !upgraded {
		// No pending ghost row to upgrade; append a paid sub-record unless
		// one is already there.
		_, err = s.studentRepo.AppendPaidEnrollmentIfAbsent(ctx, payment.StudentID, models.EnrolledCourse{
			Course:        payment.CourseID,
			EnrolledAt:    time.Now(),
			PaymentStatus: models.EnrollmentPaid,
			ReceiptNumber: receipt,
			Amount:        payment.Amount,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to grant enrollment: %w", err)
		}
	}

	slog.Info("upi payment approved", "paymentId", id, "by", approvedBy, "receipt", receipt)
	return s.upiRepo.FindByID(ctx, id)
}

// Reject transitions a pending submission to rejected. Terminal.
func (s *UpiPaymentServiceImpl) Reject(ctx context.Context, id primitive.ObjectID) (*models.UpiPayment, error) {
	_, err := s.upiRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}

	ok, err := s.upiRepo.MarkRejected(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reject submission: %w", err)
	}
	if !ok {
		return nil, ErrNotPending
	}

	slog.Info("upi payment rejected", "paymentId", id)
	return s.upiRepo.FindByID(ctx, id)
}

// ListByStatus pages through submissions in a given status
func (s *UpiPaymentServiceImpl) ListByStatus(ctx context.Context, status string, page, limit int) ([]*models.UpiPayment, error) {
	payments, err := s.upiRepo.FindByStatus(ctx, status, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return payments, nil
}

func (s *UpiPaymentServiceImpl) loadActiveCourse(ctx context.Context, courseID primitive.ObjectID) (*models.Course, error) {
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
