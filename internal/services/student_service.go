package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure StudentServiceImpl implements StudentService
var _ StudentService = (*StudentServiceImpl)(nil)

// StudentServiceImpl serves student profiles and the admin back-office views
// over them.
type StudentServiceImpl struct {
	studentRepo repositories.StudentRepository
	courseRepo  repositories.CourseRepository
	upiRepo     repositories.UpiPaymentRepository
	ledgerRepo  repositories.PaymentRecordRepository
}

func NewStudentService(
	studentRepo repositories.StudentRepository,
	courseRepo repositories.CourseRepository,
	upiRepo repositories.UpiPaymentRepository,
	ledgerRepo repositories.PaymentRecordRepository,
) *StudentServiceImpl {
	return &StudentServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		upiRepo:     upiRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// GetProfile retrieves a student's own profile
func (s *StudentServiceImpl) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

// ListEnrollments returns the student's enrollment sub-records, paid and
// pending alike, so the client can show an awaiting-approval state.
func (s *StudentServiceImpl) ListEnrollments(ctx context.Context, id primitive.ObjectID) ([]models.EnrolledCourse, error) {
	student, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if student.EnrolledCourses == nil {
		return []models.EnrolledCourse{}, nil
	}
	return student.EnrolledCourses, nil
}

// ListStudents lists students for the admin back office
func (s *StudentServiceImpl) ListStudents(ctx context.Context, page, limit int) ([]*models.Student, error) {
	students, err := s.studentRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// Deactivate disables a student account. Login is refused for inactive
// accounts; enrollments are kept.
func (s *StudentServiceImpl) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetProfile(ctx, id); err != nil {
		return err
	}
	if err := s.studentRepo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate student: %w", err)
	}
	slog.Info("student deactivated", "studentId", id)
	return nil
}

// DashboardStats assembles the admin dashboard counters
func (s *StudentServiceImpl) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	students, err := s.studentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	courses, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}
	pending, err := s.upiRepo.CountByStatus(ctx, models.UpiStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending payments: %w", err)
	}
	records, err := s.ledgerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count payment records: %w", err)
	}
	return &models.DashboardStats{
		Students:           students,
		Courses:            courses,
		PendingUpiPayments: pending,
		PaymentRecords:     records,
	}, nil
}
