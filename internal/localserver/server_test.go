package localserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/adapter/rest"
	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/infrastructure/config"
	"github.com/stulang/stulang/internal/repository"
)

type testEnv struct {
	server *Server
	client *rest.Client

	mu    sync.Mutex
	now   time.Time
	token string
}

func (e *testEnv) advance(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = e.now.Add(d)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Each test gets its own named in-memory database; a bare :memory:
	// DSN would hand every pooled connection a separate store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	cfg := config.LocalServerConfig{
		JWTKey:   "test-key",
		Username: "learner",
		Password: "secret",
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: dsn},
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := OpenDatabase(cfg, log)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}

	env := &testEnv{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	env.server = NewServer(db, cfg, log)
	env.server.clock = func() time.Time {
		env.mu.Lock()
		defer env.mu.Unlock()
		return env.now
	}

	httpServer := httptest.NewServer(env.server.Router())
	t.Cleanup(httpServer.Close)

	env.client = rest.NewClient(rest.Config{
		BaseURL: httpServer.URL,
		Token: func() string {
			env.mu.Lock()
			defer env.mu.Unlock()
			return env.token
		},
		Log: log,
	})
	return env
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	token, err := rest.NewAccountRepository(e.client).Login(context.Background(), "learner", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	e.mu.Lock()
	e.token = token
	e.mu.Unlock()
}

func (e *testEnv) addWords(t *testing.T, ids ...int64) {
	t.Helper()
	repo := rest.NewCycleWordRepository(e.client)
	for _, id := range ids {
		if _, err := repo.Add(context.Background(), id); err != nil {
			t.Fatalf("Add(%d) error = %v", id, err)
		}
	}
}

func TestLoginAndProfile(t *testing.T) {
	env := newTestEnv(t)

	if _, err := rest.NewAccountRepository(env.client).Login(context.Background(), "learner", "wrong"); !errors.Is(err, entity.ErrUnauthenticated) {
		t.Fatalf("bad password error = %v, want ErrUnauthenticated", err)
	}

	env.login(t)
	user, err := rest.NewAccountRepository(env.client).Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if user.Username != "learner" || user.Role != entity.RoleUser {
		t.Fatalf("user = %+v", user)
	}
}

func TestRequestsWithoutTokenAreUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	if _, err := rest.NewCycleRepository(env.client).Current(context.Background()); !errors.Is(err, entity.ErrUnauthenticated) {
		t.Fatalf("Current() error = %v, want ErrUnauthenticated", err)
	}
}

func TestCycleLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	repo := rest.NewCycleRepository(env.client)

	if _, err := repo.Current(context.Background()); !errors.Is(err, entity.ErrNoActiveCycle) {
		t.Fatalf("Current() before create error = %v, want ErrNoActiveCycle", err)
	}

	if _, err := repo.Create(context.Background(), entity.CycleDuration{}); !errors.Is(err, entity.ErrZeroDuration) {
		t.Fatalf("zero duration error = %v, want ErrZeroDuration", err)
	}

	created, err := repo.Create(context.Background(), entity.CycleDuration{Seconds: 30})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := created.End.Sub(created.Start); got != 30*time.Second {
		t.Fatalf("cycle span = %s, want 30s", got)
	}

	if _, err := repo.Create(context.Background(), entity.CycleDuration{Days: 1}); !errors.Is(err, entity.ErrCycleConflict) {
		t.Fatalf("second create error = %v, want ErrCycleConflict", err)
	}

	// 29 seconds in the cycle still runs; at 31 it is gone.
	env.advance(29 * time.Second)
	if _, err := repo.Current(context.Background()); err != nil {
		t.Fatalf("Current() at 29s error = %v", err)
	}
	env.advance(2 * time.Second)
	if _, err := repo.Current(context.Background()); !errors.Is(err, entity.ErrNoActiveCycle) {
		t.Fatalf("Current() at 31s error = %v, want ErrNoActiveCycle", err)
	}

	// An expired cycle is replaced, not a conflict.
	if _, err := repo.Create(context.Background(), entity.CycleDuration{Days: 1}); err != nil {
		t.Fatalf("Create() after expiry error = %v", err)
	}
}

func TestCycleVocabularyFlow(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	cycles := rest.NewCycleRepository(env.client)
	words := rest.NewCycleWordRepository(env.client)

	if _, err := words.Add(context.Background(), 1); !errors.Is(err, entity.ErrNoActiveCycle) {
		t.Fatalf("Add() without cycle error = %v, want ErrNoActiveCycle", err)
	}

	if _, err := cycles.Create(context.Background(), entity.CycleDuration{Days: 7}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	env.addWords(t, 1, 2, 3, 4, 5)

	if _, err := words.Add(context.Background(), 3); !errors.Is(err, entity.ErrWordAlreadyInCycle) {
		t.Fatalf("duplicate Add() error = %v, want ErrWordAlreadyInCycle", err)
	}
	if _, err := words.Add(context.Background(), 99999); !errors.Is(err, entity.ErrWordNotFound) {
		t.Fatalf("unknown Add() error = %v, want ErrWordNotFound", err)
	}

	page, err := words.List(context.Background(), &repository.ListCycleWordsQuery{
		Pagination: repository.Pagination{PageNo: 1, PageSize: 2},
		Sort:       repository.Sorting{By: repository.SortByWord},
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Total != 5 || page.Pages != 3 || len(page.Items) != 2 {
		t.Fatalf("page = %d items, total %d, pages %d; want 2/5/3", len(page.Items), page.Total, page.Pages)
	}
	if page.Items[0].Word.Word > page.Items[1].Word.Word {
		t.Fatal("listing not sorted by word")
	}

	// The search filter narrows to matching words only.
	page, err = words.List(context.Background(), &repository.ListCycleWordsQuery{
		Pagination: repository.Pagination{PageNo: 1, PageSize: 20},
		Search:     "appl",
	})
	if err != nil {
		t.Fatalf("List(search) error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Word.Word != "apple" {
		t.Fatalf("search result = %+v", page.Items)
	}
}

func TestExpiredCycleRejectsAdds(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	if _, err := rest.NewCycleRepository(env.client).Create(context.Background(), entity.CycleDuration{Minutes: 1}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	env.advance(2 * time.Minute)

	if _, err := rest.NewCycleWordRepository(env.client).Add(context.Background(), 1); !errors.Is(err, entity.ErrCycleExpired) {
		t.Fatalf("Add() after expiry error = %v, want ErrCycleExpired", err)
	}
}

func TestPracticeRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	practice := rest.NewPracticeRepository(env.client)
	if _, err := practice.FetchSet(context.Background(), 4); !errors.Is(err, entity.ErrNoActiveCycle) {
		t.Fatalf("FetchSet() without cycle error = %v, want ErrNoActiveCycle", err)
	}

	if _, err := rest.NewCycleRepository(env.client).Create(context.Background(), entity.CycleDuration{Days: 7}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	env.addWords(t, 1, 2, 3, 4)

	questions, err := practice.FetchSet(context.Background(), 4)
	if err != nil {
		t.Fatalf("FetchSet() error = %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("got %d questions, want 4", len(questions))
	}
	for _, q := range questions {
		if len(q.Choices) != 4 {
			t.Fatalf("question %d has %d choices", q.WordID, len(q.Choices))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			t.Fatalf("question %d correct index %d out of range", q.WordID, q.CorrectIndex)
		}
	}

	// Three right, one wrong.
	results := []entity.QuizResult{
		{WordID: questions[0].WordID, SelectedAnswer: questions[0].CorrectIndex, IsCorrect: true},
		{WordID: questions[1].WordID, SelectedAnswer: questions[1].CorrectIndex, IsCorrect: true},
		{WordID: questions[2].WordID, SelectedAnswer: questions[2].CorrectIndex, IsCorrect: true},
		{WordID: questions[3].WordID, SelectedAnswer: 0, IsCorrect: false},
	}
	report, err := practice.SubmitResults(context.Background(), results)
	if err != nil {
		t.Fatalf("SubmitResults() error = %v", err)
	}
	if report.TotalWords != 4 || report.LearnedWords != 3 || report.PendingWords != 1 || report.Score != 75 {
		t.Fatalf("report = %+v", report)
	}

	// Promoted words leave the pending set.
	page, err := rest.NewCycleWordRepository(env.client).List(context.Background(), &repository.ListCycleWordsQuery{
		Pagination: repository.Pagination{PageNo: 1, PageSize: 20},
		Status:     entity.StatusPending,
	})
	if err != nil {
		t.Fatalf("List(pending) error = %v", err)
	}
	if page.Total != 1 || page.Items[0].WordID != questions[3].WordID {
		t.Fatalf("pending after submit = %+v", page.Items)
	}

	// Promotions land in the learned history.
	learned, err := rest.NewDictionaryRepository(env.client).LearnedWords(context.Background(), repository.Pagination{PageNo: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("LearnedWords() error = %v", err)
	}
	if len(learned) != 3 {
		t.Fatalf("learned history has %d entries, want 3", len(learned))
	}
}

func TestPracticeSetDrawsPendingFirst(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	if _, err := rest.NewCycleRepository(env.client).Create(context.Background(), entity.CycleDuration{Days: 7}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	env.addWords(t, 1, 2, 3)

	practice := rest.NewPracticeRepository(env.client)
	questions, err := practice.FetchSet(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchSet() error = %v", err)
	}
	results := make([]entity.QuizResult, len(questions))
	for i, q := range questions {
		results[i] = entity.QuizResult{WordID: q.WordID, SelectedAnswer: q.CorrectIndex, IsCorrect: true}
	}
	if _, err := practice.SubmitResults(context.Background(), results); err != nil {
		t.Fatalf("SubmitResults() error = %v", err)
	}

	// Everything is learned; there is nothing left to practice.
	if _, err := practice.FetchSet(context.Background(), 3); !errors.Is(err, entity.ErrNoActiveCycle) {
		t.Fatalf("FetchSet() with empty pending error = %v, want ErrNoActiveCycle", err)
	}
}

func TestMarkLearnedPromotesInCycle(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	if _, err := rest.NewCycleRepository(env.client).Create(context.Background(), entity.CycleDuration{Days: 7}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	env.addWords(t, 2)

	words := rest.NewCycleWordRepository(env.client)
	if err := words.MarkLearned(context.Background(), 2); err != nil {
		t.Fatalf("MarkLearned() error = %v", err)
	}
	if err := words.MarkLearned(context.Background(), 99999); !errors.Is(err, entity.ErrWordNotFound) {
		t.Fatalf("MarkLearned(unknown) error = %v, want ErrWordNotFound", err)
	}

	page, err := words.List(context.Background(), &repository.ListCycleWordsQuery{
		Pagination: repository.Pagination{PageNo: 1, PageSize: 20},
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 1 || !page.Items[0].Learned() {
		t.Fatalf("cycle items = %+v, want word 2 learned", page.Items)
	}
}

func TestDictionaryEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	dict := rest.NewDictionaryRepository(env.client)

	page, err := dict.List(context.Background(), &repository.ListWordsQuery{
		Pagination: repository.Pagination{PageNo: 1, PageSize: 10},
		Level:      "b1",
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Total == 0 {
		t.Fatal("no b1 words in the seed corpus")
	}
	for _, w := range page.Items {
		if w.Level != entity.LevelB1 {
			t.Fatalf("level filter leaked %+v", w)
		}
	}

	words, err := dict.Search(context.Background(), "journey")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(words) != 1 || words[0].Word != "journey" {
		t.Fatalf("search = %+v", words)
	}

	word, err := dict.Get(context.Background(), words[0].ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if word.Topic != "travel" {
		t.Fatalf("word = %+v", word)
	}

	topics, err := dict.Topics(context.Background())
	if err != nil {
		t.Fatalf("Topics() error = %v", err)
	}
	if len(topics) == 0 {
		t.Fatal("no topics")
	}
	levels, err := dict.Levels(context.Background())
	if err != nil {
		t.Fatalf("Levels() error = %v", err)
	}
	if len(levels) == 0 {
		t.Fatal("no levels")
	}

	stats, err := dict.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.TotalCount == 0 || stats.TotalCount != stats.LearnedCount+stats.RemainingCount {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestChatEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	chat := rest.NewChatRepository(env.client)

	reply, err := chat.Send(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply == "" {
		t.Fatal("empty chat reply")
	}

	history, err := chat.History(context.Background(), repository.Pagination{PageNo: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 || history[0].Message != "hello there" || history[0].Response != reply {
		t.Fatalf("history = %+v", history)
	}
}
