package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

// PracticeState is the lifecycle phase of a quiz session.
type PracticeState int

const (
	PracticeLoading PracticeState = iota
	// PracticeEmpty is terminal: no active cycle or no pending items.
	// It is a legitimate state, not an error.
	PracticeEmpty
	PracticeInProgress
	PracticeCompleted
)

func (s PracticeState) String() string {
	switch s {
	case PracticeLoading:
		return "loading"
	case PracticeEmpty:
		return "empty"
	case PracticeInProgress:
		return "in_progress"
	case PracticeCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// PracticeUsecase runs finite quiz sessions over the current cycle's
// pending items.
type PracticeUsecase interface {
	// Start fetches a question set and returns a session in either the
	// InProgress or Empty state.
	Start(ctx context.Context, count int) (*PracticeSession, error)
}

// NewPracticeUsecase wires the repository with default behaviour.
// onSubmitted hooks run after a successful result submission, when the
// item store must be treated as stale.
func NewPracticeUsecase(repo repository.PracticeRepository, log *logrus.Logger, onSubmitted ...func()) PracticeUsecase {
	return &practiceUsecase{repo: repo, log: log, onSubmitted: onSubmitted}
}

type practiceUsecase struct {
	repo        repository.PracticeRepository
	log         *logrus.Logger
	onSubmitted []func()
}

func (u *practiceUsecase) Start(ctx context.Context, count int) (*PracticeSession, error) {
	if count <= 0 {
		count = 10
	}

	s := &PracticeSession{
		id:      uuid.NewString(),
		state:   PracticeLoading,
		answers: make(map[int]int),
		repo:    u.repo,
		log:     u.log,
		after:   u.onSubmitted,
	}

	questions, err := u.repo.FetchSet(ctx, count)
	switch {
	case errors.Is(err, entity.ErrNoActiveCycle):
		s.state = PracticeEmpty
		return s, nil
	case err != nil:
		return nil, err
	case len(questions) == 0:
		s.state = PracticeEmpty
		return s, nil
	}

	s.questions = questions
	s.state = PracticeInProgress
	u.log.WithFields(logrus.Fields{
		"session":   s.id,
		"questions": len(questions),
	}).Debug("practice session started")
	return s, nil
}

// PracticeSession is one client-driven quiz over a fetched question set.
// It is driven from a single goroutine, matching the event-loop model of
// the surrounding application.
type PracticeSession struct {
	id        string
	state     PracticeState
	questions []entity.Question
	answers   map[int]int
	current   int
	summary   *PracticeSummary

	repo  repository.PracticeRepository
	log   *logrus.Logger
	after []func()
}

// PracticeSummary is the terminal outcome of a completed session. Score
// keeps the exact fractional percentage; rounding is a display concern.
type PracticeSummary struct {
	Score          float64
	CorrectCount   int
	WordsRemaining int
	Results        []entity.QuizResult
	Report         *entity.PracticeReport
}

// ID tags the session; responses belonging to a superseded session are
// identified by it and discarded.
func (s *PracticeSession) ID() string { return s.id }

// State returns the current lifecycle phase.
func (s *PracticeSession) State() PracticeState { return s.state }

// Len returns the number of questions in the set.
func (s *PracticeSession) Len() int { return len(s.questions) }

// Current returns the index of the question being shown.
func (s *PracticeSession) Current() int { return s.current }

// Question returns the question at the current index.
func (s *PracticeSession) Question() *entity.Question {
	if s.state != PracticeInProgress && s.state != PracticeCompleted {
		return nil
	}
	return &s.questions[s.current]
}

// QuestionAt returns the i-th question, or nil when out of range.
func (s *PracticeSession) QuestionAt(i int) *entity.Question {
	if i < 0 || i >= len(s.questions) {
		return nil
	}
	return &s.questions[i]
}

// Select records the answer for the current question. Re-selecting
// overwrites; the session never advances automatically.
func (s *PracticeSession) Select(choice int) error {
	return s.SelectAt(s.current, choice)
}

// SelectAt records the answer for the given question index.
func (s *PracticeSession) SelectAt(question, choice int) error {
	if s.state != PracticeInProgress {
		return entity.ErrQuizNotActive
	}
	if question < 0 || question >= len(s.questions) {
		return entity.ErrQuizNotActive
	}
	if choice < 0 || choice >= len(s.questions[question].Choices) {
		return entity.ErrQuizNotActive
	}
	s.answers[question] = choice
	return nil
}

// AnswerFor returns the recorded answer for the i-th question.
func (s *PracticeSession) AnswerFor(i int) (int, bool) {
	choice, ok := s.answers[i]
	return choice, ok
}

// Answered returns how many questions have a recorded answer.
func (s *PracticeSession) Answered() int { return len(s.answers) }

// Next moves to the following question, clamped at the last one. Moving
// past the end is a no-op; finishing requires an explicit Submit.
func (s *PracticeSession) Next() {
	if s.current < len(s.questions)-1 {
		s.current++
	}
}

// Prev moves to the preceding question, clamped at the first one.
func (s *PracticeSession) Prev() {
	if s.current > 0 {
		s.current--
	}
}

// Submit scores the session and sends the batch. It refuses, without any
// network call, while unanswered questions remain. On a failed send the
// session stays InProgress with all answers intact so the user can retry.
func (s *PracticeSession) Submit(ctx context.Context) (*PracticeSummary, error) {
	if s.state != PracticeInProgress {
		return nil, entity.ErrQuizNotActive
	}
	if len(s.answers) != len(s.questions) {
		return nil, entity.ErrIncompleteQuiz
	}

	// Score once, in question order; the payload sent is exactly the
	// scored slice, never recomputed or reordered afterwards.
	results := make([]entity.QuizResult, len(s.questions))
	for i, q := range s.questions {
		selected := s.answers[i]
		results[i] = entity.QuizResult{
			WordID:         q.WordID,
			SelectedAnswer: selected,
			IsCorrect:      selected == q.CorrectIndex,
		}
	}

	report, err := s.repo.SubmitResults(ctx, results)
	if err != nil {
		s.log.WithField("session", s.id).WithError(err).Warn("practice submission failed; answers kept for retry")
		return nil, err
	}

	correct := lo.CountBy(results, func(r entity.QuizResult) bool { return r.IsCorrect })
	s.summary = &PracticeSummary{
		Score:          float64(correct) / float64(len(results)) * 100,
		CorrectCount:   correct,
		WordsRemaining: len(results) - correct,
		Results:        results,
		Report:         report,
	}
	s.state = PracticeCompleted

	for _, fn := range s.after {
		fn()
	}
	return s.summary, nil
}

// Summary returns the outcome of a completed session.
func (s *PracticeSession) Summary() (*PracticeSummary, bool) {
	if s.state != PracticeCompleted {
		return nil, false
	}
	return s.summary, true
}
