package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type upiFixture struct {
	svc         *UpiPaymentServiceImpl
	studentRepo *fakeStudentRepo
	courseRepo  *fakeCourseRepo
	upiRepo     *fakeUpiRepo
}

func newUpiFixture() *upiFixture {
	studentRepo := newFakeStudentRepo()
	courseRepo := newFakeCourseRepo()
	upiRepo := newFakeUpiRepo()
	return &upiFixture{
		svc:         NewUpiPaymentService(studentRepo, courseRepo, upiRepo, testConfig()),
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		upiRepo:     upiRepo,
	}
}

func TestInitiatePublic(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and pending enrollment for new buyer", func(t *testing.T) {
		f := newUpiFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)

		resp, err := f.svc.InitiatePublic(ctx, &models.PublicInitiateRequest{
			CourseID: course.ID.Hex(),
			Name:     "Ravi Shah",
			Email:    "ravi@example.com",
			Phone:    "9876500001",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10242), resp.Amount)
		assert.True(t, strings.HasPrefix(resp.UpiURL, "upi://pay?"))
		assert.Contains(t, resp.UpiURL, "pa=sandhan%40upi")
		require.NotNil(t, resp.PreCreated)
		assert.NotEmpty(t, resp.PreCreated.TempPassword)

		student, err := f.studentRepo.FindByEmail(ctx, "ravi@example.com")
		require.NoError(t, err)
		require.Len(t, student.EnrolledCourses, 1)
		assert.Equal(t, models.EnrollmentPending, student.EnrolledCourses[0].PaymentStatus)
		// A pending ghost never counts as access.
		enrolled, _ := f.studentRepo.HasPaidEnrollment(ctx, student.ID, course.ID)
		assert.False(t, enrolled)
	})

	t.Run("existing account gets no new password", func(t *testing.T) {
		f := newUpiFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)
		student := seedStudent(t, f.studentRepo)

		resp, err := f.svc.InitiatePublic(ctx, &models.PublicInitiateRequest{
			CourseID: course.ID.Hex(),
			Name:     student.Name,
			Email:    student.Email,
			Phone:    student.Mobile,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.PreCreated.TempPassword)
		assert.Equal(t, student.ID.Hex(), resp.PreCreated.StudentID)
	})

	t.Run("paid enrollment blocks re-initiation", func(t *testing.T) {
		f := newUpiFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)
		student := seedStudent(t, f.studentRepo)
		_, err := f.studentRepo.AppendPaidEnrollmentIfAbsent(ctx, student.ID, models.EnrolledCourse{
			Course: course.ID, PaymentStatus: models.EnrollmentPaid,
		})
		require.NoError(t, err)

		_, err = f.svc.InitiatePublic(ctx, &models.PublicInitiateRequest{
			CourseID: course.ID.Hex(),
			Name:     student.Name,
			Email:    student.Email,
			Phone:    student.Mobile,
		})
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	})

	t.Run("inactive course is refused", func(t *testing.T) {
		f := newUpiFixture()
		course := seedCourse(t, f.courseRepo, 10000, false)

		_, err := f.svc.InitiatePublic(ctx, &models.PublicInitiateRequest{
			CourseID: course.ID.Hex(),
			Name:     "Ravi Shah",
			Email:    "ravi@example.com",
			Phone:    "9876500001",
		})
		assert.ErrorIs(t, err, ErrCourseInactive)
	})
}

func TestSubmitUTR(t *testing.T) {
	ctx := context.Background()

	t.Run("records a pending submission", func(t *testing.T) {
		f := newUpiFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)
		student := seedStudent(t, f.studentRepo)

		payment, err := f.svc.SubmitUTR(ctx, student.ID, course.ID, "UTR0001")
		require.NoError(t, err)
		assert.Equal(t, models.UpiStatusPending, payment.Status)
		assert.Equal(t, int64(10242), payment.Amount)
	})

	t.Run("duplicate UTR is rejected", func(t *testing.T) {
		f := newUpiFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)
		first := seedStudent(t, f.studentRepo)
		second := &models.Student{Name: "Meera Joshi", Email: "meera@example.com", Mobile: "9876500002", IsActive: true}
		require.NoError(t, f.studentRepo.Create(ctx, second))

		_, err := f.svc.SubmitUTR(ctx, first.ID, course.ID, "UTR0002")
		require.NoError(t, err)

		_, err = f.svc.SubmitUTR(ctx, second.ID, course.ID, "UTR0002")
		assert.ErrorIs(t, err, ErrDuplicateUTR)
	})

	t.Run("a pending submission blocks another for the same course", func(t *testing.T) {
		f := newUpiFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)
		student := seedStudent(t, f.studentRepo)

		_, err := f.svc.SubmitUTR(ctx, student.ID, course.ID, "UTR0003")
		require.NoError(t, err)

		_, err = f.svc.SubmitUTR(ctx, student.ID, course.ID, "UTR0004")
		assert.ErrorIs(t, err, ErrPendingExists)
	})

	t.Run("resubmission after rejection is allowed", func(t *testing.T) {
		f := newUpiFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)
		student := seedStudent(t, f.studentRepo)

		payment, err := f.svc.SubmitUTR(ctx, student.ID, course.ID, "UTR0005")
		require.NoError(t, err)
		_, err = f.svc.Reject(ctx, payment.ID)
		require.NoError(t, err)

		_, err = f.svc.SubmitUTR(ctx, student.ID, course.ID, "UTR0006")
		assert.NoError(t, err)
	})

	t.Run("paid enrollment blocks submission", func(t *testing.T) {
		f := newUpiFixture()
		course := seedCourse(t, f.courseRepo, 10000, true)
		student := seedStudent(t, f.studentRepo)
		_, err := f.studentRepo.AppendPaidEnrollmentIfAbsent(ctx, student.ID, models.EnrolledCourse{
			Course: course.ID, PaymentStatus: models.EnrollmentPaid,
		})
		require.NoError(t, err)

		_, err = f.svc.SubmitUTR(ctx, student.ID, course.ID, "UTR0007")
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	})
}

func TestApproveAndReject(t *testing.T) {
	ctx := context.Background()

	submit := func(t *testing.T, f *upiFixture) (*models.Student, *models.Course, *models.UpiPayment) {
		t.Helper()
		course := seedCourse(t, f.courseRepo, 10000, true)
		student := seedStudent(t, f.studentRepo)
		payment, err := f.svc.SubmitUTR(ctx, student.ID, course.ID, "UTR1000")
		require.NoError(t, err)
		return student, course, payment
	}

	t.Run("approval grants a paid enrollment with receipt", func(t *testing.T) {
		f := newUpiFixture()
		student, course, payment := submit(t, f)

		approved, err := f.svc.Approve(ctx, payment.ID, "admin@sandhan.in")
		require.NoError(t, err)
		assert.Equal(t, models.UpiStatusApproved, approved.Status)
		assert.Equal(t, "admin@sandhan.in", approved.ApprovedBy)

		enrolled, _ := f.studentRepo.HasPaidEnrollment(ctx, student.ID, course.ID)
		assert.True(t, enrolled)
		reloaded, _ := f.studentRepo.FindByID(ctx, student.ID)
		require.Len(t, reloaded.EnrolledCourses, 1)
		assert.Regexp(t, `^SDN\d{10}$`, reloaded.EnrolledCourses[0].ReceiptNumber)
	})

	t.Run("approval upgrades the pending ghost row in place", func(t *testing.T) {
		f := newUpiFixture()
		student, course, payment := submit(t, f)
		_, err := f.studentRepo.AppendPendingEnrollmentIfAbsent(ctx, student.ID, models.EnrolledCourse{
			Course: course.ID, PaymentStatus: models.EnrollmentPending,
		})
		require.NoError(t, err)

		_, err = f.svc.Approve(ctx, payment.ID, "admin@sandhan.in")
		require.NoError(t, err)

		reloaded, _ := f.studentRepo.FindByID(ctx, student.ID)
		require.Len(t, reloaded.EnrolledCourses, 1)
		assert.Equal(t, models.EnrollmentPaid, reloaded.EnrolledCourses[0].PaymentStatus)
	})

	t.Run("double approval fails", func(t *testing.T) {
		f := newUpiFixture()
		_, _, payment := submit(t, f)

		_, err := f.svc.Approve(ctx, payment.ID, "admin@sandhan.in")
		require.NoError(t, err)
		_, err = f.svc.Approve(ctx, payment.ID, "admin@sandhan.in")
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("approve after reject fails and grants nothing", func(t *testing.T) {
		f := newUpiFixture()
		student, course, payment := submit(t, f)

		_, err := f.svc.Reject(ctx, payment.ID)
		require.NoError(t, err)
		_, err = f.svc.Approve(ctx, payment.ID, "admin@sandhan.in")
		assert.ErrorIs(t, err, ErrNotPending)

		enrolled, _ := f.studentRepo.HasPaidEnrollment(ctx, student.ID, course.ID)
		assert.False(t, enrolled)
	})

	t.Run("reject after approve fails", func(t *testing.T) {
		f := newUpiFixture()
		_, _, payment := submit(t, f)

		_, err := f.svc.Approve(ctx, payment.ID, "admin@sandhan.in")
		require.NoError(t, err)
		_, err = f.svc.Reject(ctx, payment.ID)
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("unknown submission yields not found", func(t *testing.T) {
		f := newUpiFixture()
		_, err := f.svc.Approve(ctx, primitive.NewObjectID(), "admin@sandhan.in")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
