package errors

import (
	"errors"
	"fmt"
)

var (
	ErrShipmentNotFound        = errors.New("shipment not found")
	ErrAttachmentNotFound      = errors.New("attachment not found")
	ErrInvalidShipmentInput    = errors.New("invalid shipment input")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrShipmentNotDeletable    = errors.New("can only delete pending or cancelled shipments")
	ErrTrackingNumberTaken     = errors.New("tracking number already in use")
	ErrForbidden               = errors.New("access denied")
)

// TransitionError carries the rejected transition for the error payload.
// errors.Is(err, ErrInvalidStatusTransition) matches through Unwrap.
type TransitionError struct {
	Current   string
	Requested string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.Current, e.Requested)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}
