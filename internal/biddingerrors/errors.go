package biddingerrors

import "errors"

// Kind classifies an error for the web surface.
type Kind int

const (
	KindStoreFailure Kind = iota
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "store_failure"
	}
}

// Error is a classified error with a reason that is safe to show to users.
type Error struct {
	kind   Kind
	reason string
}

func newError(kind Kind, reason string) *Error {
	return &Error{kind: kind, reason: reason}
}

func (e *Error) Error() string { return e.reason }

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// Authentication and authorization errors
var (
	ErrUnauthenticated    = newError(KindUnauthenticated, "please login first")
	ErrInvalidCredentials = newError(KindUnauthenticated, "invalid credentials")
	ErrAdminRequired      = newError(KindUnauthorized, "admin access required")
	ErrOwnAuction         = newError(KindUnauthorized, "you cannot bid on your own auction")
	ErrNotSeller          = newError(KindUnauthorized, "you are not authorized to edit this auction")
	ErrNotWinner          = newError(KindUnauthorized, "you are not the winner of this auction")
)

// Repository-level errors
var (
	ErrAuctionNotFound = newError(KindNotFound, "auction not found")
	ErrUserNotFound    = newError(KindNotFound, "user not found")
	ErrOrderNotFound   = newError(KindNotFound, "order not found")
	ErrNoBids          = newError(KindNotFound, "no bids found for auction")
	ErrStoreFailure    = newError(KindStoreFailure, "a database error occurred")
	ErrOTPDelivery     = newError(KindStoreFailure, "could not send the verification code")
)

// business logic errors
var (
	ErrInvalidBid       = newError(KindValidation, "invalid bid")
	ErrBidTooLow        = newError(KindValidation, "bid must be higher than current price")
	ErrEmailNotVerified = newError(KindValidation, "you must verify your email before bidding")
	ErrMissingFields    = newError(KindValidation, "all fields are required")
	ErrWeakPassword     = newError(KindValidation, "password must be at least 6 characters")
	ErrInvalidOTP       = newError(KindValidation, "invalid or expired OTP")
	ErrOTPNotRequested  = newError(KindValidation, "please request an OTP first")
	ErrInvalidStatus    = newError(KindValidation, "invalid order status")
	ErrInvalidEndTime   = newError(KindValidation, "end time must be in the future")
	ErrInvalidPrice     = newError(KindValidation, "starting price must be positive")

	ErrAuctionEnded    = newError(KindConflict, "auction has ended")
	ErrAuctionNotEnded = newError(KindConflict, "auction not ended yet")
	ErrAuctionHasBids  = newError(KindConflict, "auction cannot be edited once bids exist")
	ErrAlreadyOrdered  = newError(KindConflict, "order already placed for this auction")
	ErrEmailExists     = newError(KindConflict, "email already registered")
	ErrSelfDemotion    = newError(KindConflict, "you cannot change your own admin status")
)

// KindOf returns the classification of err. Unclassified errors count as store failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindStoreFailure
}

// Reason returns the user-facing message for err.
func Reason(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.reason
	}
	return ErrStoreFailure.reason
}
