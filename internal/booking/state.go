package booking

// The booking state machine: WAITING -> {APPROVED, REJECTED, CANCELED},
// everything else absorbing. Transitions mutate the booking in memory;
// the repository persists them conditionally so a lost race surfaces as
// ErrInvalidStatus instead of a silent double transition.

// Approve moves a WAITING booking to APPROVED. Only the item owner may
// approve. A second call fails, it does not silently succeed.
func Approve(b *Booking, actorID string) error {
	return decide(b, actorID, StatusApproved)
}

// Reject moves a WAITING booking to REJECTED. Same guards as Approve.
func Reject(b *Booking, actorID string) error {
	return decide(b, actorID, StatusRejected)
}

func decide(b *Booking, actorID string, to Status) error {
	if b.OwnerID != actorID {
		return ErrNotOwner
	}
	if b.Status != StatusWaiting {
		return ErrInvalidStatus
	}
	b.Status = to
	return nil
}

// Cancel withdraws a WAITING booking. Only the booker may cancel their
// own request; once the owner has decided, the request can no longer be
// withdrawn.
func Cancel(b *Booking, actorID string) error {
	if b.BookerID != actorID {
		return ErrAccessDenied
	}
	if b.Status != StatusWaiting {
		return ErrInvalidStatus
	}
	b.Status = StatusCanceled
	return nil
}
