package services

import (
	"context"
	"testing"
	"time"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubSigner returns canned URLs without touching any provider
type stubSigner struct{}

func (stubSigner) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://cdn.example.com/signed/" + key, nil
}

func (stubSigner) DownloadCandidates(ctx context.Context, key string, expiry time.Duration) ([]storage.Candidate, error) {
	return []storage.Candidate{{Name: "stub", URL: "https://cdn.example.com/dl/" + key}}, nil
}

type contentFixture struct {
	svc         *ContentServiceImpl
	studentRepo *fakeStudentRepo
	courseRepo  *fakeCourseRepo
	videoRepo   *fakeVideoRepo
	docRepo     *fakeDocRepo
}

func newContentFixture() *contentFixture {
	studentRepo := newFakeStudentRepo()
	courseRepo := newFakeCourseRepo()
	videoRepo := newFakeVideoRepo()
	docRepo := newFakeDocRepo()
	signers := map[string]storage.ContentSigner{
		models.ProviderCloudinary: stubSigner{},
		models.ProviderR2:         stubSigner{},
	}
	return &contentFixture{
		svc:         NewContentService(studentRepo, courseRepo, videoRepo, docRepo, signers, storage.NewProber(time.Second, 5*time.Second)),
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		videoRepo:   videoRepo,
		docRepo:     docRepo,
	}
}

func TestVideoAccess(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*contentFixture, *models.Student, *models.Course, *models.Video) {
		f := newContentFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)
		student := seedStudent(t, f.studentRepo)
		video := &models.Video{
			CourseID:   course.ID,
			Title:      "Kinematics 1",
			Provider:   models.ProviderCloudinary,
			StorageKey: "courses/kinematics-1",
		}
		require.NoError(t, f.videoRepo.Create(ctx, video))
		return f, student, course, video
	}

	t.Run("non-enrolled student is refused", func(t *testing.T) {
		f, student, course, _ := setup(t)

		viewer := Viewer{StudentID: student.ID, Role: models.RoleStudent}
		_, err := f.svc.ListCourseVideos(ctx, viewer, course.ID)
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("pending enrollment does not grant access", func(t *testing.T) {
		f, student, course, _ := setup(t)
		_, err := f.studentRepo.AppendPendingEnrollmentIfAbsent(ctx, student.ID, models.EnrolledCourse{
			Course: course.ID, PaymentStatus: models.EnrollmentPending,
		})
		require.NoError(t, err)

		viewer := Viewer{StudentID: student.ID, Role: models.RoleStudent}
		_, err = f.svc.ListCourseVideos(ctx, viewer, course.ID)
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("paid enrollment gets a signed URL", func(t *testing.T) {
		f, student, course, video := setup(t)
		_, err := f.studentRepo.AppendPaidEnrollmentIfAbsent(ctx, student.ID, models.EnrolledCourse{
			Course: course.ID, PaymentStatus: models.EnrollmentPaid,
		})
		require.NoError(t, err)

		viewer := Viewer{StudentID: student.ID, Role: models.RoleStudent}
		got, url, err := f.svc.VideoPlaybackURL(ctx, viewer, course.ID, video.ID)
		require.NoError(t, err)
		assert.Equal(t, video.ID, got.ID)
		assert.Equal(t, "https://cdn.example.com/signed/courses/kinematics-1", url)
	})

	t.Run("admin bypasses the enrollment gate", func(t *testing.T) {
		f, _, course, video := setup(t)

		viewer := Viewer{Role: models.RoleAdmin}
		_, url, err := f.svc.VideoPlaybackURL(ctx, viewer, course.ID, video.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, url)
	})

	t.Run("video from another course is not found", func(t *testing.T) {
		f, _, _, video := setup(t)
		other := seedCourse(t, f.courseRepo, 5000, true)

		viewer := Viewer{Role: models.RoleAdmin}
		_, _, err := f.svc.VideoPlaybackURL(ctx, viewer, other.ID, video.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("non-enrolled student cannot open a document", func(t *testing.T) {
		f := newContentFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)
		student := seedStudent(t, f.studentRepo)
		doc := &models.Document{
			CourseID:   course.ID,
			Title:      "Formula sheet",
			FileName:   "formulas.pdf",
			Provider:   models.ProviderR2,
			StorageKey: "docs/formulas.pdf",
		}
		require.NoError(t, f.docRepo.Create(ctx, doc))

		viewer := Viewer{StudentID: student.ID, Role: models.RoleStudent}
		_, err := f.svc.OpenDocument(ctx, viewer, doc.ID)
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("unknown document is not found", func(t *testing.T) {
		f := newContentFixture()
		viewer := Viewer{Role: models.RoleAdmin}
		_, err := f.svc.OpenDocument(ctx, viewer, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRegisterContent(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown provider is refused", func(t *testing.T) {
		f := newContentFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)

		err := f.svc.RegisterVideo(ctx, &models.Video{
			CourseID: course.ID, Title: "x", Provider: "dropbox", StorageKey: "k",
		})
		assert.Error(t, err)
	})

	t.Run("unknown course is refused", func(t *testing.T) {
		f := newContentFixture()
		err := f.svc.RegisterDocument(ctx, &models.Document{
			CourseID: primitive.NewObjectID(), Title: "x", FileName: "x.pdf",
			Provider: models.ProviderR2, StorageKey: "k",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
