package usecase

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeCycleRepo struct {
	createCalls int
	cycle       *entity.Cycle
	createErr   error
	currentErr  error
	start       time.Time
}

func (r *fakeCycleRepo) Create(ctx context.Context, d entity.CycleDuration) (*entity.Cycle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.createCalls++
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.cycle = &entity.Cycle{ID: 1, Start: r.start, End: r.start.Add(d.Span())}
	return r.cycle, nil
}

func (r *fakeCycleRepo) Current(ctx context.Context) (*entity.Cycle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.currentErr != nil {
		return nil, r.currentErr
	}
	if r.cycle == nil {
		return nil, entity.ErrNoActiveCycle
	}
	return r.cycle, nil
}

type fakeCycleWordRepo struct {
	pages      map[int]*repository.CycleWordPage
	listCalls  int
	lastQuery  *repository.ListCycleWordsQuery
	onList     func()
	listErr    error
	addErr     error
	learnedIDs []int64
}

func (r *fakeCycleWordRepo) List(ctx context.Context, q *repository.ListCycleWordsQuery) (*repository.CycleWordPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.listCalls++
	r.lastQuery = q
	if r.onList != nil {
		r.onList()
	}
	if r.listErr != nil {
		return nil, r.listErr
	}
	page, ok := r.pages[q.PageNo]
	if !ok {
		return &repository.CycleWordPage{}, nil
	}
	clone := *page
	clone.Items = append([]entity.CycleWord(nil), page.Items...)
	return &clone, nil
}

func (r *fakeCycleWordRepo) Add(ctx context.Context, wordID int64) (*entity.CycleWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.addErr != nil {
		return nil, r.addErr
	}
	return &entity.CycleWord{WordID: wordID, Status: entity.StatusPending}, nil
}

func (r *fakeCycleWordRepo) MarkLearned(ctx context.Context, wordID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.learnedIDs = append(r.learnedIDs, wordID)
	return nil
}

type fakePracticeRepo struct {
	questions   []entity.Question
	fetchErr    error
	submitErr   error
	submitCalls int
	submitted   [][]entity.QuizResult
	report      *entity.PracticeReport
}

func (r *fakePracticeRepo) FetchSet(ctx context.Context, count int) ([]entity.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	if len(r.questions) > count {
		return r.questions[:count], nil
	}
	return r.questions, nil
}

func (r *fakePracticeRepo) SubmitResults(ctx context.Context, results []entity.QuizResult) (*entity.PracticeReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.submitCalls++
	if r.submitErr != nil {
		return nil, r.submitErr
	}
	r.submitted = append(r.submitted, append([]entity.QuizResult(nil), results...))
	if r.report != nil {
		return r.report, nil
	}
	return &entity.PracticeReport{TotalWords: len(results)}, nil
}

type fakeDictionaryRepo struct {
	listCalls   int
	lastQuery   *repository.ListWordsQuery
	lastKeyword string
	lastPage    repository.Pagination
	searchCalls int
	getCalls    int
	words       []entity.Word
}

func (r *fakeDictionaryRepo) List(ctx context.Context, q *repository.ListWordsQuery) (*repository.WordPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.listCalls++
	r.lastQuery = q
	return &repository.WordPage{Items: r.words, Total: len(r.words), Pages: 1}, nil
}

func (r *fakeDictionaryRepo) Search(ctx context.Context, keyword string) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.searchCalls++
	r.lastKeyword = keyword
	return r.words, nil
}

func (r *fakeDictionaryRepo) Get(ctx context.Context, wordID int64) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.getCalls++
	for i := range r.words {
		if r.words[i].ID == wordID {
			return &r.words[i], nil
		}
	}
	return nil, entity.ErrWordNotFound
}

func (r *fakeDictionaryRepo) Topics(ctx context.Context) ([]string, error) {
	return []string{"animals", "food"}, nil
}

func (r *fakeDictionaryRepo) Levels(ctx context.Context) ([]string, error) {
	return []string{"a1", "a2"}, nil
}

func (r *fakeDictionaryRepo) Statistics(ctx context.Context) (*entity.VocabularyStatistics, error) {
	return &entity.VocabularyStatistics{}, nil
}

func (r *fakeDictionaryRepo) LearnedWords(ctx context.Context, p repository.Pagination) ([]entity.LearnedWord, error) {
	r.lastPage = p
	return nil, nil
}

type fakeChatRepo struct {
	sendCalls int
	lastSent  string
	lastPage  repository.Pagination
	reply     string
}

func (r *fakeChatRepo) Send(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.sendCalls++
	r.lastSent = message
	return r.reply, nil
}

func (r *fakeChatRepo) History(ctx context.Context, p repository.Pagination) ([]entity.ChatExchange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.lastPage = p
	return nil, nil
}

func fourQuestions() []entity.Question {
	return []entity.Question{
		{WordID: 11, Word: "body", Choices: []string{"c0", "c1", "c2", "c3"}, CorrectIndex: 0},
		{WordID: 12, Word: "dog", Choices: []string{"c0", "c1", "c2", "c3"}, CorrectIndex: 1},
		{WordID: 13, Word: "shirt", Choices: []string{"c0", "c1", "c2", "c3"}, CorrectIndex: 2},
		{WordID: 14, Word: "house", Choices: []string{"c0", "c1", "c2", "c3"}, CorrectIndex: 2},
	}
}
