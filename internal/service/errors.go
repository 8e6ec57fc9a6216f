package service

import "errors"

// Failure taxonomy for exam acquisition and persistence. Everything here
// is locally recoverable: the session returns to its config state and the
// message is surfaced to the user.
var (
	// ErrInvalidConfiguration covers malformed exam configs, e.g. a
	// missing document in PDF mode or a non-positive question count.
	ErrInvalidConfiguration = errors.New("invalid exam configuration")

	// ErrNoQuestionsAvailable is returned by the standard strategy when
	// the catalog has no entries for the requested specialization.
	ErrNoQuestionsAvailable = errors.New("no standard questions available for specialization")

	// ErrEmptyDocument is returned by the PDF strategy when the extracted
	// text is blank.
	ErrEmptyDocument = errors.New("document is empty or contains no readable text")

	// ErrGenerationFailed wraps generator collaborator failures, including
	// an empty result set.
	ErrGenerationFailed = errors.New("question generation failed")

	// ErrPersistence marks a bank or stats write failure. The in-memory
	// result handed to the caller stays valid.
	ErrPersistence = errors.New("persistence failure")

	// ErrSessionBusy rejects a start while an acquisition is in flight.
	ErrSessionBusy = errors.New("an exam is already being prepared")

	// ErrInvalidTransition rejects a lifecycle operation in the wrong state.
	ErrInvalidTransition = errors.New("operation not allowed in current exam state")

	// ErrAnswerIndexOutOfRange rejects an answer for a question index the
	// session does not hold.
	ErrAnswerIndexOutOfRange = errors.New("answer index out of range")
)
