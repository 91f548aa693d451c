package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentRecord is the flat legacy ledger row kept for backward-compatible
// reporting. It lives in the historical "users" collection, is written once as
// a side effect of successful Razorpay verification, and is never updated.
type PaymentRecord struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Mobile            string             `bson:"mobile" json:"mobile"`
	CourseID          primitive.ObjectID `bson:"courseId" json:"courseId"`
	CourseTitle       string             `bson:"courseTitle" json:"courseTitle"`
	Amount            int64              `bson:"amount" json:"amount"`
	ReceiptNumber     string             `bson:"receiptNumber" json:"receiptNumber"`
	RazorpayOrderID   string             `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID string             `bson:"razorpayPaymentId" json:"razorpayPaymentId"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
