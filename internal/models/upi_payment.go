package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpiPayment statuses. A row transitions pending -> approved or
// pending -> rejected exactly once; both outcomes are terminal.
const (
	UpiStatusPending  = "pending"
	UpiStatusApproved = "approved"
	UpiStatusRejected = "rejected"
)

// UpiPayment is one UTR submission awaiting manual reconciliation. The unique
// index on UTRNumber is the only database-enforced de-duplication across rows.
type UpiPayment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StudentID  primitive.ObjectID `bson:"studentId" json:"studentId"`
	CourseID   primitive.ObjectID `bson:"courseId" json:"courseId"`
	Amount     int64              `bson:"amount" json:"amount"`
	UTRNumber  string             `bson:"utrNumber" json:"utrNumber"`
	Status     string             `bson:"status" json:"status"`
	ApprovedBy string             `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
