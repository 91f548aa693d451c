package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure CatalogServiceImpl implements CatalogService
var _ CatalogService = (*CatalogServiceImpl)(nil)

// CatalogServiceImpl manages the course and test-series catalog
type CatalogServiceImpl struct {
	courseRepo repositories.CourseRepository
	seriesRepo repositories.TestSeriesRepository
}

func NewCatalogService(courseRepo repositories.CourseRepository, seriesRepo repositories.TestSeriesRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		courseRepo: courseRepo,
		seriesRepo: seriesRepo,
	}
}

// CreateCourse validates and stores a new course
func (s *CatalogServiceImpl) CreateCourse(ctx context.Context, course *models.Course) error {
	if strings.TrimSpace(course.Title) == "" {
		return fmt.Errorf("course title is required")
	}
	if course.Price <= 0 {
		return fmt.Errorf("course price must be positive")
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	slog.Info("course created", "courseId", course.ID, "title", course.Title)
	return nil
}

// GetCourse retrieves a single course by id
func (s *CatalogServiceImpl) GetCourse(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// ListCourses lists courses, optionally restricted to active ones
func (s *CatalogServiceImpl) ListCourses(ctx context.Context, activeOnly bool) ([]*models.Course, error) {
	courses, err := s.courseRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse updates an existing course
func (s *CatalogServiceImpl) UpdateCourse(ctx context.Context, course *models.Course) error {
	if course.Price <= 0 {
		return fmt.Errorf("course price must be positive")
	}
	if _, err := s.courseRepo.FindByID(ctx, course.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

// DeleteCourse removes a course from the catalog. Enrollments already granted
// keep working since content access checks the student document, not the
// catalog.
func (s *CatalogServiceImpl) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	slog.Info("course deleted", "courseId", id)
	return nil
}

// CreateTestSeries validates and stores a new test series
func (s *CatalogServiceImpl) CreateTestSeries(ctx context.Context, series *models.TestSeries) error {
	if strings.TrimSpace(series.Title) == "" {
		return fmt.Errorf("test series title is required")
	}
	if series.Price <= 0 {
		return fmt.Errorf("test series price must be positive")
	}
	if err := s.seriesRepo.Create(ctx, series); err != nil {
		return fmt.Errorf("failed to create test series: %w", err)
	}
	return nil
}

// GetTestSeries retrieves a single test series by id
func (s *CatalogServiceImpl) GetTestSeries(ctx context.Context, id primitive.ObjectID) (*models.TestSeries, error) {
	series, err := s.seriesRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get test series: %w", err)
	}
	return series, nil
}

// ListTestSeries lists test series, optionally restricted to active ones
func (s *CatalogServiceImpl) ListTestSeries(ctx context.Context, activeOnly bool) ([]*models.TestSeries, error) {
	series, err := s.seriesRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list test series: %w", err)
	}
	return series, nil
}

// UpdateTestSeries updates an existing test series
func (s *CatalogServiceImpl) UpdateTestSeries(ctx context.Context, series *models.TestSeries) error {
	if series.Price <= 0 {
		return fmt.Errorf("test series price must be positive")
	}
	if _, err := s.seriesRepo.FindByID(ctx, series.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get test series: %w", err)
	}
	if err := s.seriesRepo.Update(ctx, series); err != nil {
		return fmt.Errorf("failed to update test series: %w", err)
	}
	return nil
}

// DeleteTestSeries removes a test series from the catalog
func (s *CatalogServiceImpl) DeleteTestSeries(ctx context.Context, id primitive.ObjectID) error {
	if err := s.seriesRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete test series: %w", err)
	}
	return nil
}
