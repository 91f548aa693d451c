package models

// CreateOrderRequest starts a Razorpay checkout for a course
type CreateOrderRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// OrderResponse is returned by create-order. Amount is in rupees,
// AmountPaise is what the checkout widget charges.
type OrderResponse struct {
	OrderID     string  `json:"orderId"`
	Amount      int64   `json:"amount"`
	AmountPaise int64   `json:"amountPaise"`
	Currency    string  `json:"currency"`
	Key         string  `json:"key"`
	Course      *Course `json:"course"`
}

// VerifyPaymentRequest carries the checkout callback proof
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	CourseID          string `json:"courseId" binding:"required"`
}

// EnrollmentResult is returned once a payment proof has been reconciled
type EnrollmentResult struct {
	ReceiptNumber string          `json:"receiptNumber"`
	Enrollment    *EnrolledCourse `json:"enrollment"`
}

// PublicInitiateRequest starts the public UPI flow for an unregistered buyer
type PublicInitiateRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
}

// PreCreatedStudent carries credentials issued before payment completes.
// TempPassword is returned exactly once, at initiation.
type PreCreatedStudent struct {
	StudentID    string `json:"studentId"`
	TempPassword string `json:"tempPassword,omitempty"`
}

// PublicInitiateResponse is returned by initiate-public
type PublicInitiateResponse struct {
	UpiURL     string             `json:"upiUrl"`
	Amount     int64              `json:"amount"`
	PreCreated *PreCreatedStudent `json:"preCreated"`
}

// SubmitUTRRequest submits manual payment proof for a course
type SubmitUTRRequest struct {
	CourseID  string `json:"courseId" binding:"required"`
	UTRNumber string `json:"utrNumber" binding:"required"`
}

// DashboardStats are the admin dashboard counters
type DashboardStats struct {
	Students           int64 `json:"students"`
	Courses            int64 `json:"courses"`
	PendingUpiPayments int64 `json:"pendingUpiPayments"`
	PaymentRecords     int64 `json:"paymentRecords"`
}
