package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

// prefetchWindow is how close to the end of the loaded cards the cursor
// may get before the next server page is fetched.
const prefetchWindow = 5

// FlashcardUsecase builds review decks over the active cycle's
// vocabulary.
type FlashcardUsecase interface {
	// StartDeck loads the first page of the cycle's words. Returns
	// entity.ErrNoActiveCycle when there is no cycle to review.
	StartDeck(ctx context.Context, pageSize int) (*FlashcardDeck, error)
}

// NewFlashcardUsecase wires the repository with default behaviour.
func NewFlashcardUsecase(repo repository.CycleWordRepository, log *logrus.Logger) FlashcardUsecase {
	return &flashcardUsecase{repo: repo, log: log}
}

type flashcardUsecase struct {
	repo repository.CycleWordRepository
	log  *logrus.Logger
}

func (u *flashcardUsecase) StartDeck(ctx context.Context, pageSize int) (*FlashcardDeck, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	deck := &FlashcardDeck{repo: u.repo, pageSize: pageSize, page: 1}
	first, err := u.repo.List(ctx, deck.query(1))
	if err != nil {
		return nil, err
	}

	deck.cards = first.Items
	deck.total = first.Total
	deck.pages = first.Pages
	return deck, nil
}

// FlashcardDeck iterates the cycle's vocabulary card by card, fetching
// further server pages as the cursor approaches the end of what is
// loaded. Progress is measured against the server-reported total, not
// against the loaded slice.
type FlashcardDeck struct {
	repo     repository.CycleWordRepository
	pageSize int

	cards   []entity.CycleWord
	total   int
	pages   int
	page    int
	index   int
	flipped bool
}

func (d *FlashcardDeck) query(page int) *repository.ListCycleWordsQuery {
	return &repository.ListCycleWordsQuery{
		Pagination: repository.Pagination{PageNo: page, PageSize: d.pageSize},
	}
}

// Card returns the card under the cursor.
func (d *FlashcardDeck) Card() (*entity.CycleWord, bool) {
	if d.index < 0 || d.index >= len(d.cards) {
		return nil, false
	}
	return &d.cards[d.index], true
}

// Flipped reports whether the current card shows its back side.
func (d *FlashcardDeck) Flipped() bool { return d.flipped }

// Flip turns the current card over and reports the new side.
func (d *FlashcardDeck) Flip() bool {
	d.flipped = !d.flipped
	return d.flipped
}

// Next advances the cursor, resetting the flip state, and prefetches the
// following server page when the cursor gets within the prefetch window
// of the loaded end.
func (d *FlashcardDeck) Next(ctx context.Context) error {
	if d.index < len(d.cards)-1 {
		d.index++
		d.flipped = false
	}

	if len(d.cards)-d.index <= prefetchWindow && d.page < d.pages {
		next, err := d.repo.List(ctx, d.query(d.page+1))
		if err != nil {
			return err
		}
		d.page++
		d.cards = append(d.cards, next.Items...)
		d.total = next.Total
		d.pages = next.Pages
	}
	return nil
}

// Prev moves the cursor back one card, resetting the flip state.
func (d *FlashcardDeck) Prev() {
	if d.index > 0 {
		d.index--
		d.flipped = false
	}
}

// Loaded returns how many cards are currently in memory.
func (d *FlashcardDeck) Loaded() int { return len(d.cards) }

// Total returns the server-reported deck size.
func (d *FlashcardDeck) Total() int { return d.total }

// Index returns the cursor position.
func (d *FlashcardDeck) Index() int { return d.index }

// Progress returns the fraction of the whole deck seen so far, in
// percent.
func (d *FlashcardDeck) Progress() float64 {
	if d.total == 0 {
		return 0
	}
	return float64(d.index+1) / float64(d.total) * 100
}
