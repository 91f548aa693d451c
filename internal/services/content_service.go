package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/repositories"
	"github.com/Ravij-p/sandhan-backend/pkg/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ContentServiceImpl implements ContentService
var _ ContentService = (*ContentServiceImpl)(nil)

const (
	signedURLExpiry = time.Hour
	downloadExpiry  = 15 * time.Minute
)

// ContentServiceImpl gates video and document delivery on a paid enrollment
// (admins bypass the gate) and delegates URL issuance to the per-provider
// signers.
type ContentServiceImpl struct {
	studentRepo repositories.StudentRepository
	courseRepo  repositories.CourseRepository
	videoRepo   repositories.VideoRepository
	docRepo     repositories.DocumentRepository
	signers     map[string]storage.ContentSigner
	prober      *storage.Prober
}

func NewContentService(
	studentRepo repositories.StudentRepository,
	courseRepo repositories.CourseRepository,
	videoRepo repositories.VideoRepository,
	docRepo repositories.DocumentRepository,
	signers map[string]storage.ContentSigner,
	prober *storage.Prober,
) *ContentServiceImpl {
	return &ContentServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		videoRepo:   videoRepo,
		docRepo:     docRepo,
		signers:     signers,
		prober:      prober,
	}
}

// ListCourseVideos lists a course's videos for an enrolled viewer
func (s *ContentServiceImpl) ListCourseVideos(ctx context.Context, viewer Viewer, courseID primitive.ObjectID) ([]*models.Video, error) {
	if err := s.requireAccess(ctx, viewer, courseID); err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

// VideoPlaybackURL returns the video metadata and a time-limited signed URL
func (s *ContentServiceImpl) VideoPlaybackURL(ctx context.Context, viewer Viewer, courseID, videoID primitive.ObjectID) (*models.Video, string, error) {
	if err := s.requireAccess(ctx, viewer, courseID); err != nil {
		return nil, "", err
	}

	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to load video: %w", err)
	}
	if video.CourseID != courseID {
		return nil, "", ErrNotFound
	}

	signer, ok := s.signers[video.Provider]
	if !ok {
		return nil, "", fmt.Errorf("no signer for provider %q", video.Provider)
	}
	url, err := signer.SignedURL(ctx, video.StorageKey, signedURLExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign url: %w", err)
	}
	return video, url, nil
}

// OpenDocument resolves and opens a proxied download for an enrolled viewer.
// The upstream URL is found by probing ranked signing variants; the first one
// the provider accepts is streamed back.
func (s *ContentServiceImpl) OpenDocument(ctx context.Context, viewer Viewer, documentID primitive.ObjectID) (*DocumentStream, error) {
	doc, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if err := s.requireAccess(ctx, viewer, doc.CourseID); err != nil {
		return nil, err
	}

	signer, ok := s.signers[doc.Provider]
	if !ok {
		return nil, fmt.Errorf("no signer for provider %q", doc.Provider)
	}
	candidates, err := signer.DownloadCandidates(ctx, doc.StorageKey, downloadExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to build candidates: %w", err)
	}

	resp, err := s.prober.Resolve(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve download: %w", err)
	}

	contentType := doc.ContentType
	if ct := resp.Header.Get("Content-Type"); contentType == "" && ct != "" {
		contentType = ct
	}
	slog.Info("document stream opened", "documentId", doc.ID, "provider", doc.Provider)
	return &DocumentStream{
		Body:        resp.Body,
		ContentType: contentType,
		FileName:    doc.FileName,
		Size:        resp.ContentLength,
	}, nil
}

// RegisterVideo records video metadata for a course
func (s *ContentServiceImpl) RegisterVideo(ctx context.Context, video *models.Video) error {
	if err := s.requireCourse(ctx, video.CourseID); err != nil {
		return err
	}
	if video.Provider != models.ProviderCloudinary && video.Provider != models.ProviderR2 {
		return fmt.Errorf("unknown provider %q", video.Provider)
	}
	return s.videoRepo.Create(ctx, video)
}

// RegisterDocument records document metadata for a course
func (s *ContentServiceImpl) RegisterDocument(ctx context.Context, doc *models.Document) error {
	if err := s.requireCourse(ctx, doc.CourseID); err != nil {
		return err
	}
	if doc.Provider != models.ProviderCloudinary && doc.Provider != models.ProviderR2 {
		return fmt.Errorf("unknown provider %q", doc.Provider)
	}
	return s.docRepo.Create(ctx, doc)
}

func (s *ContentServiceImpl) requireAccess(ctx context.Context, viewer Viewer, courseID primitive.ObjectID) error {
	if viewer.IsAdmin() {
		return nil
	}
	enrolled, err := s.studentRepo.HasPaidEnrollment(ctx, viewer.StudentID, courseID)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return ErrNotEnrolled
	}
	return nil
}

func (s *ContentServiceImpl) requireCourse(ctx context.Context, courseID primitive.ObjectID) error {
	_, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load course: %w", err)
	}
	return nil
}
