package models

import "errors"

// Domain errors surfaced to callers. Handlers map these to HTTP statuses with
// errors.Is: not-found to 404, invalid-argument to 400, conflicts to 409.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPrizeNotFound   = errors.New("prize not found")
	ErrDrawNotFound    = errors.New("draw not found")

	ErrInvalidQuantity         = errors.New("quantity must be a positive integer")
	ErrQuantityExceedsEligible = errors.New("quantity exceeds eligible contestants")
	ErrEmptySessionName        = errors.New("session name is required")
	ErrEmptyContestantName     = errors.New("contestant name is required")
	ErrEmptyPrizeName          = errors.New("prize name is required")

	// ErrContestantAlreadyWon is returned when a draw loses the commit race:
	// a concurrent draw consumed one of the selected contestants. The whole
	// draw is rolled back; the caller must re-read eligibility and resubmit.
	ErrContestantAlreadyWon = errors.New("contestant already won: refresh and retry")

	// ErrDuplicateContestant is returned when a contestant name already
	// exists in the session (case-insensitive at the application layer).
	ErrDuplicateContestant = errors.New("contestant name already exists in session")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
