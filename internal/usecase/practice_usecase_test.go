package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stulang/stulang/internal/entity"
)

func TestStartWithNoActiveCycleIsEmptyNotError(t *testing.T) {
	repo := &fakePracticeRepo{fetchErr: entity.ErrNoActiveCycle}
	uc := NewPracticeUsecase(repo, newTestLogger())

	s, err := uc.Start(context.Background(), 10)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.State() != PracticeEmpty {
		t.Fatalf("state = %s, want empty", s.State())
	}
}

func TestStartWithZeroQuestionsIsEmpty(t *testing.T) {
	uc := NewPracticeUsecase(&fakePracticeRepo{}, newTestLogger())

	s, err := uc.Start(context.Background(), 10)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.State() != PracticeEmpty {
		t.Fatalf("state = %s, want empty", s.State())
	}
}

func TestStartFailsOnTransportError(t *testing.T) {
	wantErr := errors.New("connection refused")
	uc := NewPracticeUsecase(&fakePracticeRepo{fetchErr: wantErr}, newTestLogger())

	if _, err := uc.Start(context.Background(), 10); !errors.Is(err, wantErr) {
		t.Fatalf("Start() error = %v, want %v", err, wantErr)
	}
}

func TestNavigationClampsToBounds(t *testing.T) {
	uc := NewPracticeUsecase(&fakePracticeRepo{questions: fourQuestions()}, newTestLogger())
	s, err := uc.Start(context.Background(), 10)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s.Prev()
	if s.Current() != 0 {
		t.Fatalf("Prev at first question moved to %d", s.Current())
	}
	for i := 0; i < 10; i++ {
		s.Next()
	}
	if s.Current() != 3 {
		t.Fatalf("Next past last question moved to %d, want clamp at 3", s.Current())
	}
	s.Prev()
	if s.Current() != 2 {
		t.Fatalf("Prev moved to %d, want 2", s.Current())
	}
}

func TestSelectOverwritesWithoutAdvancing(t *testing.T) {
	uc := NewPracticeUsecase(&fakePracticeRepo{questions: fourQuestions()}, newTestLogger())
	s, _ := uc.Start(context.Background(), 10)

	if err := s.Select(1); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if s.Current() != 0 {
		t.Fatal("Select must not advance the cursor")
	}
	if err := s.Select(3); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got, _ := s.AnswerFor(0); got != 3 {
		t.Fatalf("answer = %d, want overwrite to 3", got)
	}
	if s.Answered() != 1 {
		t.Fatalf("Answered() = %d, want 1", s.Answered())
	}
}

func TestSelectRejectsOutOfRangeChoice(t *testing.T) {
	uc := NewPracticeUsecase(&fakePracticeRepo{questions: fourQuestions()}, newTestLogger())
	s, _ := uc.Start(context.Background(), 10)

	if err := s.Select(4); !errors.Is(err, entity.ErrQuizNotActive) {
		t.Fatalf("Select(4) error = %v", err)
	}
	if err := s.SelectAt(9, 0); !errors.Is(err, entity.ErrQuizNotActive) {
		t.Fatalf("SelectAt(9,0) error = %v", err)
	}
}

func TestSubmitRequiresEveryAnswerAndIssuesNoRequest(t *testing.T) {
	repo := &fakePracticeRepo{questions: fourQuestions()}
	uc := NewPracticeUsecase(repo, newTestLogger())
	s, _ := uc.Start(context.Background(), 10)

	for i := 0; i < 3; i++ {
		if err := s.SelectAt(i, 0); err != nil {
			t.Fatalf("SelectAt(%d) error = %v", i, err)
		}
	}

	_, err := s.Submit(context.Background())
	if !errors.Is(err, entity.ErrIncompleteQuiz) {
		t.Fatalf("Submit() error = %v, want ErrIncompleteQuiz", err)
	}
	if repo.submitCalls != 0 {
		t.Fatalf("incomplete submit reached the server %d times", repo.submitCalls)
	}
	if s.State() != PracticeInProgress {
		t.Fatalf("state = %s, want in_progress", s.State())
	}
}

func TestSubmitScoresExactly(t *testing.T) {
	repo := &fakePracticeRepo{questions: fourQuestions()}
	uc := NewPracticeUsecase(repo, newTestLogger())
	s, _ := uc.Start(context.Background(), 10)

	// Correct indices are [0,1,2,2]; answering [0,1,1,2] scores 3 of 4.
	for i, choice := range []int{0, 1, 1, 2} {
		if err := s.SelectAt(i, choice); err != nil {
			t.Fatalf("SelectAt(%d) error = %v", i, err)
		}
	}

	summary, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if summary.Score != 75 {
		t.Fatalf("Score = %v, want exactly 75", summary.Score)
	}
	if summary.CorrectCount != 3 || summary.WordsRemaining != 1 {
		t.Fatalf("correct = %d remaining = %d, want 3 and 1", summary.CorrectCount, summary.WordsRemaining)
	}
	if s.State() != PracticeCompleted {
		t.Fatalf("state = %s, want completed", s.State())
	}
}

func TestSubmitKeepsFractionalScore(t *testing.T) {
	questions := []entity.Question{
		{WordID: 1, Choices: []string{"a", "b"}, CorrectIndex: 0},
		{WordID: 2, Choices: []string{"a", "b"}, CorrectIndex: 0},
		{WordID: 3, Choices: []string{"a", "b"}, CorrectIndex: 0},
	}
	uc := NewPracticeUsecase(&fakePracticeRepo{questions: questions}, newTestLogger())
	s, _ := uc.Start(context.Background(), 10)

	for i, choice := range []int{0, 1, 1} {
		if err := s.SelectAt(i, choice); err != nil {
			t.Fatalf("SelectAt(%d) error = %v", i, err)
		}
	}

	summary, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if want := float64(1) / 3 * 100; summary.Score != want {
		t.Fatalf("Score = %v, want exact %v", summary.Score, want)
	}
}

func TestSubmittedPayloadMatchesScoring(t *testing.T) {
	repo := &fakePracticeRepo{questions: fourQuestions()}
	uc := NewPracticeUsecase(repo, newTestLogger())
	s, _ := uc.Start(context.Background(), 10)

	answers := []int{0, 1, 1, 2}
	for i, choice := range answers {
		if err := s.SelectAt(i, choice); err != nil {
			t.Fatalf("SelectAt(%d) error = %v", i, err)
		}
	}
	summary, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(repo.submitted) != 1 {
		t.Fatalf("server received %d batches, want 1", len(repo.submitted))
	}
	sent := repo.submitted[0]
	if len(sent) != 4 {
		t.Fatalf("batch size = %d, want 4", len(sent))
	}
	for i, r := range sent {
		q := fourQuestions()[i]
		if r.WordID != q.WordID {
			t.Fatalf("result %d word_id = %d, want %d (order must be preserved)", i, r.WordID, q.WordID)
		}
		if r.SelectedAnswer != answers[i] {
			t.Fatalf("result %d selected = %d, want %d", i, r.SelectedAnswer, answers[i])
		}
		if r.IsCorrect != (answers[i] == q.CorrectIndex) {
			t.Fatalf("result %d is_correct = %v, disagrees with scoring", i, r.IsCorrect)
		}
	}
	for i, r := range summary.Results {
		if r != sent[i] {
			t.Fatalf("summary result %d differs from the payload sent", i)
		}
	}
}

func TestFailedSubmitPreservesSessionForRetry(t *testing.T) {
	repo := &fakePracticeRepo{questions: fourQuestions(), submitErr: entity.ErrSchemaMismatch}
	uc := NewPracticeUsecase(repo, newTestLogger())
	s, _ := uc.Start(context.Background(), 10)

	for i := 0; i < 4; i++ {
		if err := s.SelectAt(i, 0); err != nil {
			t.Fatalf("SelectAt(%d) error = %v", i, err)
		}
	}

	if _, err := s.Submit(context.Background()); !errors.Is(err, entity.ErrSchemaMismatch) {
		t.Fatalf("Submit() error = %v, want ErrSchemaMismatch", err)
	}
	if s.State() != PracticeInProgress {
		t.Fatalf("state = %s, want in_progress after failed submit", s.State())
	}
	if s.Answered() != 4 {
		t.Fatal("answers were lost on a failed submit")
	}

	// The same session retries successfully once the server recovers.
	repo.submitErr = nil
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("retry Submit() error = %v", err)
	}
	if s.State() != PracticeCompleted {
		t.Fatalf("state = %s, want completed after retry", s.State())
	}
}

func TestSubmitRunsStalenessHooks(t *testing.T) {
	repo := &fakePracticeRepo{questions: fourQuestions()}
	stale := 0
	uc := NewPracticeUsecase(repo, newTestLogger(), func() { stale++ })
	s, _ := uc.Start(context.Background(), 10)

	for i := 0; i < 4; i++ {
		if err := s.SelectAt(i, 0); err != nil {
			t.Fatalf("SelectAt(%d) error = %v", i, err)
		}
	}
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if stale != 1 {
		t.Fatalf("staleness hook ran %d times, want 1", stale)
	}
}

func TestCompletedSessionRejectsFurtherInput(t *testing.T) {
	repo := &fakePracticeRepo{questions: fourQuestions()}
	uc := NewPracticeUsecase(repo, newTestLogger())
	s, _ := uc.Start(context.Background(), 10)

	for i := 0; i < 4; i++ {
		if err := s.SelectAt(i, 0); err != nil {
			t.Fatalf("SelectAt(%d) error = %v", i, err)
		}
	}
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if err := s.Select(1); !errors.Is(err, entity.ErrQuizNotActive) {
		t.Fatalf("Select after completion error = %v", err)
	}
	if _, err := s.Submit(context.Background()); !errors.Is(err, entity.ErrQuizNotActive) {
		t.Fatalf("double Submit error = %v", err)
	}
	if _, ok := s.Summary(); !ok {
		t.Fatal("completed session must expose its summary")
	}
}
