package entity

import "errors"

// Domain errors for cycles, vocabulary and practice sessions.
//
// The split mirrors how callers must react: validation errors are raised
// before any network traffic, not-found errors describe legitimate empty
// states, conflict and expired errors are user-recoverable, and
// ErrUnauthenticated is fatal to the session.
var (
	ErrZeroDuration       = errors.New("cycle duration must be greater than zero")
	ErrCycleConflict      = errors.New("an active learning cycle already exists")
	ErrNoActiveCycle      = errors.New("no active learning cycle")
	ErrCycleExpired       = errors.New("learning cycle has ended")
	ErrWordNotFound       = errors.New("vocabulary word not found")
	ErrWordAlreadyInCycle = errors.New("vocabulary word already in cycle")
	ErrIncompleteQuiz     = errors.New("quiz has unanswered questions")
	ErrQuizNotActive      = errors.New("quiz session is not in progress")
	ErrEmptyMessage       = errors.New("chat message must not be empty")
	ErrEmptyKeyword       = errors.New("search keyword must not be empty")
	ErrUnauthenticated    = errors.New("session is not authenticated")
	ErrForbidden          = errors.New("admin privileges required")
	ErrSchemaMismatch     = errors.New("request payload rejected by server")
)
