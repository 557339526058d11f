package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Satchel error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"     // 400
	ErrAmbiguousAddress  ErrorCode = "AMBIGUOUS_ADDRESS"   // 400
	ErrInvalidActivity   ErrorCode = "INVALID_ACTIVITY"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"           // 404
	ErrItemNotInCapsule  ErrorCode = "ITEM_NOT_IN_CAPSULE" // 404
	ErrNameAlreadyExists ErrorCode = "NAME_ALREADY_EXISTS" // 409
	ErrConflict          ErrorCode = "CONFLICT"            // 409
	ErrInternal          ErrorCode = "INTERNAL"            // 500
)

// SatchelError represents a structured error with code, status, and details.
type SatchelError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *SatchelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *SatchelError {
	return &SatchelError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewAmbiguousAddress creates a 400 error for when both ID and name are provided.
func NewAmbiguousAddress() *SatchelError {
	return &SatchelError{
		Code:    ErrAmbiguousAddress,
		Status:  400,
		Message: "cannot specify both id and name; use one addressing mode",
	}
}

// NewInvalidActivity creates a 400 error for an unrecognized activity name.
func NewInvalidActivity(name string) *SatchelError {
	return &SatchelError{
		Code:    ErrInvalidActivity,
		Status:  400,
		Message: fmt.Sprintf("unknown activity: %s", name),
		Details: map[string]any{"activity": name},
	}
}

// NewNotFound creates a 404 error for when a trip cannot be found.
func NewNotFound(identifier string) *SatchelError {
	return &SatchelError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("trip not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewItemNotInCapsule creates a 404 error for packing an item the capsule doesn't hold.
func NewItemNotInCapsule(tripID, wardrobeItemID string) *SatchelError {
	return &SatchelError{
		Code:    ErrItemNotInCapsule,
		Status:  404,
		Message: fmt.Sprintf("wardrobe item %s is not in the capsule for trip %s", wardrobeItemID, tripID),
		Details: map[string]any{"trip_id": tripID, "wardrobe_item_id": wardrobeItemID},
	}
}

// NewNameAlreadyExists creates a 409 error for trip name collisions.
func NewNameAlreadyExists(name string) *SatchelError {
	return &SatchelError{
		Code:    ErrNameAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("trip with name %q already exists", name),
		Details: map[string]any{"name": name},
	}
}

// NewConflict creates a 409 error for a write that lost a race with another
// update of the same trip.
func NewConflict(id string) *SatchelError {
	return &SatchelError{
		Code:    ErrConflict,
		Status:  409,
		Message: fmt.Sprintf("trip %s was modified concurrently", id),
		Details: map[string]any{"trip_id": id},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *SatchelError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &SatchelError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is, or wraps, a SatchelError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *SatchelError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}
