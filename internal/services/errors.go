package services

import "errors"

// Sentinel errors the handlers map onto HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCourseInactive     = errors.New("course is not active")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrPendingExists      = errors.New("a pending payment already exists for this course")
	ErrDuplicateUTR       = errors.New("this UTR number has already been submitted")
	ErrNotPending         = errors.New("payment is not pending")
	ErrSignatureMismatch  = errors.New("payment signature verification failed")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrInvalidOTP         = errors.New("invalid or expired code")
)
