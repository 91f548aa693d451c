package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status of an enrollment sub-record.
const (
	EnrollmentPending = "pending"
	EnrollmentPaid    = "paid"
)

// EnrolledCourse is an enrollment sub-record embedded in a Student. At most one
// sub-record per course may reach the paid status.
type EnrolledCourse struct {
	Course            primitive.ObjectID `bson:"course" json:"course"`
	EnrolledAt        time.Time          `bson:"enrolledAt" json:"enrolledAt"`
	PaymentStatus     string             `bson:"paymentStatus" json:"paymentStatus"`
	ReceiptNumber     string             `bson:"receiptNumber,omitempty" json:"receiptNumber,omitempty"`
	Amount            int64              `bson:"amount" json:"amount"`
	RazorpayOrderID   string             `bson:"razorpayOrderId,omitempty" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string             `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
}

// PurchasedTestSeries mirrors EnrolledCourse for test-series purchases.
type PurchasedTestSeries struct {
	TestSeries    primitive.ObjectID `bson:"testSeries" json:"testSeries"`
	PurchasedAt   time.Time          `bson:"purchasedAt" json:"purchasedAt"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	ReceiptNumber string             `bson:"receiptNumber,omitempty" json:"receiptNumber,omitempty"`
	Amount        int64              `bson:"amount" json:"amount"`
}

// Student represents a registered (or payment-pre-created) student
type Student struct {
	ID                  primitive.ObjectID    `bson:"_id,omitempty" json:"id,omitempty"`
	Name                string                `bson:"name" json:"name"`
	Email               string                `bson:"email" json:"email"`
	Mobile              string                `bson:"mobile" json:"mobile"`
	Password            string                `bson:"password" json:"-"`
	IsActive            bool                  `bson:"isActive" json:"isActive"`
	EnrolledCourses     []EnrolledCourse      `bson:"enrolledCourses" json:"enrolledCourses"`
	PurchasedTestSeries []PurchasedTestSeries `bson:"purchasedTestSeries" json:"purchasedTestSeries"`
	CreatedAt           time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// PaidCourseIDs returns the course ids the student has a paid enrollment for.
// Pending ghost rows created by the public UPI flow are skipped.
func (s *Student) PaidCourseIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(s.EnrolledCourses))
	for _, e := range s.EnrolledCourses {
		if e.PaymentStatus == EnrollmentPaid {
			ids = append(ids, e.Course)
		}
	}
	return ids
}
