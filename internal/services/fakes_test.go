package services

import (
	"context"
	"sync"
	"time"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/pkg/razorpay"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// duplicateKeyError builds the error shape the driver returns on a unique
// index violation, so service-level duplicate handling can be exercised.
func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

// fakeStudentRepo is an in-memory StudentRepository with the same conditional
// update semantics as the Mongo implementation.
type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[primitive.ObjectID]*models.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[primitive.ObjectID]*models.Student)}
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.Email == student.Email {
			return duplicateKeyError()
		}
	}
	if student.ID.IsZero() {
		student.ID = primitive.NewObjectID()
	}
	student.CreatedAt = time.Now()
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return s, nil
}

func (r *fakeStudentRepo) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeStudentRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStudentRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.students)), nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.Password = passwordHash
	return nil
}

func (r *fakeStudentRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.IsActive = active
	return nil
}

func (r *fakeStudentRepo) HasPaidEnrollment(ctx context.Context, studentID, courseID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[studentID]
	if !ok {
		return false, nil
	}
	for _, e := range s.EnrolledCourses {
		if e.Course == courseID && e.PaymentStatus == models.EnrollmentPaid {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) AppendPendingEnrollmentIfAbsent(ctx context.Context, studentID primitive.ObjectID, enrollment models.EnrolledCourse) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[studentID]
	if !ok {
		return false, nil
	}
	for _, e := range s.EnrolledCourses {
		if e.Course == enrollment.Course {
			return false, nil
		}
	}
	s.EnrolledCourses = append(s.EnrolledCourses, enrollment)
	return true, nil
}

func (r *fakeStudentRepo) AppendPaidEnrollmentIfAbsent(ctx context.Context, studentID primitive.ObjectID, enrollment models.EnrolledCourse) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[studentID]
	if !ok {
		return false, nil
	}
	for _, e := range s.EnrolledCourses {
		if e.Course == enrollment.Course && e.PaymentStatus == models.EnrollmentPaid {
			return false, nil
		}
	}
	s.EnrolledCourses = append(s.EnrolledCourses, enrollment)
	return true, nil
}

func (r *fakeStudentRepo) UpgradePendingEnrollment(ctx context.Context, studentID, courseID primitive.ObjectID, receiptNumber string, amount int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[studentID]
	if !ok {
		return false, nil
	}
	for i := range s.EnrolledCourses {
		e := &s.EnrolledCourses[i]
		if e.Course == courseID && e.PaymentStatus == models.EnrollmentPending {
			e.PaymentStatus = models.EnrollmentPaid
			e.ReceiptNumber = receiptNumber
			e.Amount = amount
			return true, nil
		}
	}
	return false, nil
}

// fakeCourseRepo is an in-memory CourseRepository
type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[primitive.ObjectID]*models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[primitive.ObjectID]*models.Course)}
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return c, nil
}

func (r *fakeCourseRepo) FindAll(ctx context.Context, activeOnly bool) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.courses)), nil
}

// fakeUpiRepo is an in-memory UpiPaymentRepository enforcing UTR uniqueness
// and pending-guarded transitions.
type fakeUpiRepo struct {
	mu       sync.Mutex
	payments map[primitive.ObjectID]*models.UpiPayment
}

func newFakeUpiRepo() *fakeUpiRepo {
	return &fakeUpiRepo{payments: make(map[primitive.ObjectID]*models.UpiPayment)}
}

func (r *fakeUpiRepo) Create(ctx context.Context, payment *models.UpiPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.UTRNumber == payment.UTRNumber {
			return duplicateKeyError()
		}
	}
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	payment.CreatedAt = time.Now()
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakeUpiRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.UpiPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

func (r *fakeUpiRepo) FindPendingByStudentAndCourse(ctx context.Context, studentID, courseID primitive.ObjectID) (*models.UpiPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.StudentID == studentID && p.CourseID == courseID && p.Status == models.UpiStatusPending {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUpiRepo) FindByStatus(ctx context.Context, status string, page, limit int) ([]*models.UpiPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.UpiPayment{}
	for _, p := range r.payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeUpiRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	rows, _ := r.FindByStatus(ctx, status, 1, 0)
	return int64(len(rows)), nil
}

func (r *fakeUpiRepo) MarkApproved(ctx context.Context, id primitive.ObjectID, approvedBy string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != models.UpiStatusPending {
		return false, nil
	}
	now := time.Now()
	p.Status = models.UpiStatusApproved
	p.ApprovedBy = approvedBy
	p.ApprovedAt = &now
	return true, nil
}

func (r *fakeUpiRepo) MarkRejected(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != models.UpiStatusPending {
		return false, nil
	}
	p.Status = models.UpiStatusRejected
	return true, nil
}

// fakeLedgerRepo is an in-memory PaymentRecordRepository mirroring the unique
// indexes on mobile and receipt number.
type fakeLedgerRepo struct {
	mu      sync.Mutex
	records []*models.PaymentRecord
}

func newFakeLedgerRepo() *fakeLedgerRepo { return &fakeLedgerRepo{} }

func (r *fakeLedgerRepo) Create(ctx context.Context, record *models.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.Mobile == record.Mobile || existing.ReceiptNumber == record.ReceiptNumber {
			return duplicateKeyError()
		}
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	r.records = append(r.records, record)
	return nil
}

func (r *fakeLedgerRepo) FindByPaymentID(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.RazorpayPaymentID == paymentID {
			return existing, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeLedgerRepo) FindAll(ctx context.Context, page, limit int) ([]*models.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.PaymentRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *fakeLedgerRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

// fakeGateway is a scriptable RazorpayGateway
type fakeGateway struct {
	verifyResult bool
	createErr    error
	lastAmount   int64
	lastReceipt  string
}

func (g *fakeGateway) CreateOrder(amountPaise int64, receipt string, notes map[string]interface{}) (*razorpay.Order, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.lastAmount = amountPaise
	g.lastReceipt = receipt
	return &razorpay.Order{ID: "order_test123", Amount: amountPaise, Currency: "INR"}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.verifyResult
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

// fakeAdminRepo is an in-memory AdminRepository
type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[primitive.ObjectID]*models.Admin)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeAdminRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return a, nil
}

// fakeOTPRepo is an in-memory OTPRepository
type fakeOTPRepo struct {
	mu   sync.Mutex
	otps []*models.OTP
}

func newFakeOTPRepo() *fakeOTPRepo { return &fakeOTPRepo{} }

func (r *fakeOTPRepo) Create(ctx context.Context, otp *models.OTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	otp.ID = primitive.NewObjectID()
	r.otps = append(r.otps, otp)
	return nil
}

func (r *fakeOTPRepo) FindValid(ctx context.Context, email, code, purpose string) (*models.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.otps {
		if o.Email == email && o.Code == code && o.Purpose == purpose && o.ExpiresAt.After(time.Now()) {
			return o, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeOTPRepo) DeleteByEmail(ctx context.Context, email, purpose string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.otps[:0]
	for _, o := range r.otps {
		if o.Email != email || o.Purpose != purpose {
			kept = append(kept, o)
		}
	}
	r.otps = kept
	return nil
}

// recordingMailer captures outbound mail
type recordingMailer struct {
	mu   sync.Mutex
	sent []string // "to|subject|body"
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+subject+"|"+body)
	return nil
}

// fakeVideoRepo is an in-memory VideoRepository
type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[primitive.ObjectID]*models.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[primitive.ObjectID]*models.Video)}
}

func (r *fakeVideoRepo) Create(ctx context.Context, video *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if video.ID.IsZero() {
		video.ID = primitive.NewObjectID()
	}
	r.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return v, nil
}

func (r *fakeVideoRepo) FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Video{}
	for _, v := range r.videos {
		if v.CourseID == courseID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.videos, id)
	return nil
}

// fakeDocRepo is an in-memory DocumentRepository
type fakeDocRepo struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*models.Document
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[primitive.ObjectID]*models.Document)}
}

func (r *fakeDocRepo) Create(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return d, nil
}

func (r *fakeDocRepo) FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Document{}
	for _, d := range r.docs {
		if d.CourseID == courseID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}
