package domain

import "errors"

// Sentinel errors grouped by taxonomy. Layers wrap these with %w and add
// context; the HTTP adapter maps them to status codes.
var (
	// Validation: rejected before any mutation.
	ErrMissingField = errors.New("missing required field")

	// State: the operation is invalid for the current session state.
	ErrNoJournal        = errors.New("no journal for user")
	ErrNoEntry          = errors.New("no journal entry for date")
	ErrNoSession        = errors.New("no active session")
	ErrSessionCompleted = errors.New("session already completed")
	ErrStepLimit        = errors.New("all answer steps used; call completion")
	ErrNoAnswers        = errors.New("no answers recorded")
	ErrTaskExpired      = errors.New("task expired")
	ErrNotFound         = errors.New("not found")

	// Oracle: the generation call failed or returned unusable output.
	// Recoverable with a fallback for question generation, fatal for final
	// advice.
	ErrOracle = errors.New("oracle failure")

	// Storage: persistence unavailable. Always fatal; surfaced to callers as
	// a generic internal error and logged in full server-side.
	ErrStorage = errors.New("storage failure")
)
