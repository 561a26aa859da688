package localserver

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

func defaultRand(n int) int { return rand.Intn(n) }

type createCycleRequest struct {
	Duration struct {
		Days    int `json:"days"`
		Hours   int `json:"hours"`
		Minutes int `json:"minutes"`
		Seconds int `json:"seconds"`
	} `json:"duration"`
}

func (r createCycleRequest) span() time.Duration {
	d := r.Duration
	return time.Duration(d.Days)*24*time.Hour +
		time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
}

func cycleJSON(c Cycle) gin.H {
	return gin.H{
		"cycle_id":   c.ID,
		"start_time": c.StartTime.UTC(),
		"end_time":   c.EndTime.UTC(),
	}
}

// handleCreateCycle starts a new study window. A running cycle blocks
// creation; an expired one is replaced together with its items.
func (s *Server) handleCreateCycle(c *gin.Context) {
	var req createCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.span() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cycle duration must be positive"})
		return
	}

	account := s.account(c)
	now := s.clock()

	var current Cycle
	err := s.db.Where("account_id = ?", account.ID).Order("id desc").First(&current).Error
	switch {
	case err == nil && !current.expired(now):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "an active cycle already exists"})
		return
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	cycle := Cycle{AccountID: account.ID, StartTime: now, EndTime: now.Add(req.span())}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if current.ID != 0 {
			if err := tx.Where("cycle_id = ?", current.ID).Delete(&CycleWord{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&current).Error; err != nil {
				return err
			}
		}
		return tx.Create(&cycle).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	s.log.WithFields(map[string]any{"cycle": cycle.ID, "ends": cycle.EndTime}).Info("cycle created")
	c.JSON(http.StatusOK, cycleJSON(cycle))
}

func (s *Server) handleCurrentCycle(c *gin.Context) {
	cycle, ok := s.activeCycle(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cycleJSON(cycle))
}

// activeCycle loads the caller's unexpired cycle or answers 404.
func (s *Server) activeCycle(c *gin.Context) (Cycle, bool) {
	account := s.account(c)

	var cycle Cycle
	err := s.db.Where("account_id = ?", account.ID).Order("id desc").First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && cycle.expired(s.clock())) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "no active cycle"})
		return Cycle{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return Cycle{}, false
	}
	return cycle, true
}

type practiceQuestion struct {
	WordID        int64    `json:"word_id"`
	Word          string   `json:"word"`
	Pronunciation string   `json:"pronunciation,omitempty"`
	Example       string   `json:"example,omitempty"`
	Level         string   `json:"level,omitempty"`
	Topic         string   `json:"topic,omitempty"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
}

// handlePracticeSet builds a multiple-choice quiz over the cycle's
// items, pending words first, learned ones padding the set.
func (s *Server) handlePracticeSet(c *gin.Context) {
	cycle, ok := s.activeCycle(c)
	if !ok {
		return
	}

	count := 10
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "count must be a positive integer"})
			return
		}
		count = parsed
	}

	pending, err := s.cycleVocabulary(cycle.ID, statusPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if len(pending) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "no pending words to practice"})
		return
	}

	picked := s.sample(pending, count)
	if len(picked) < count {
		learned, err := s.cycleVocabulary(cycle.ID, statusLearned)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		picked = append(picked, s.sample(learned, count-len(picked))...)
	}

	questions := make([]practiceQuestion, 0, len(picked))
	for _, word := range picked {
		choices, err := s.choicesFor(word)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		questions = append(questions, practiceQuestion{
			WordID:        word.ID,
			Word:          word.Word,
			Pronunciation: word.Pronunciation,
			Example:       word.Example,
			Level:         word.Level,
			Topic:         word.Topic,
			Choices:       choices,
			CorrectAnswer: word.Definition,
		})
	}
	c.JSON(http.StatusOK, questions)
}

func (s *Server) cycleVocabulary(cycleID int64, status string) ([]Vocabulary, error) {
	var words []Vocabulary
	err := s.db.
		Joins("JOIN cycle_words ON cycle_words.vocabulary_id = vocabularies.id").
		Where("cycle_words.cycle_id = ? AND cycle_words.status = ?", cycleID, status).
		Find(&words).Error
	return words, err
}

// sample picks up to count words without repetition.
func (s *Server) sample(words []Vocabulary, count int) []Vocabulary {
	if count >= len(words) {
		return words
	}
	pool := append([]Vocabulary(nil), words...)
	picked := make([]Vocabulary, 0, count)
	for len(picked) < count {
		i := s.rand(len(pool))
		picked = append(picked, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return picked
}

// choicesFor returns the word's definition shuffled among three
// distractors drawn from the rest of the corpus.
func (s *Server) choicesFor(word Vocabulary) ([]string, error) {
	var distractors []string
	err := s.db.Model(&Vocabulary{}).
		Where("id <> ?", word.ID).
		Order("RANDOM()").
		Limit(3).
		Pluck("definition", &distractors).Error
	if err != nil {
		return nil, err
	}

	choices := append(distractors, word.Definition)
	for i := len(choices) - 1; i > 0; i-- {
		j := s.rand(i + 1)
		choices[i], choices[j] = choices[j], choices[i]
	}
	return choices, nil
}

type quizResult struct {
	WordID         int64 `json:"word_id" binding:"required"`
	SelectedAnswer *int  `json:"selected_answer" binding:"required"`
	IsCorrect      *bool `json:"is_correct" binding:"required"`
}

type practiceResultsRequest struct {
	QuizResults []quizResult `json:"quiz_results" binding:"required"`
}

// handlePracticeResults promotes the correctly answered words and
// reports cycle-wide progress. The score is an integer percentage;
// clients keep their own exact figure.
func (s *Server) handlePracticeResults(c *gin.Context) {
	cycle, ok := s.activeCycle(c)
	if !ok {
		return
	}

	var req practiceResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	account := s.account(c)
	now := s.clock()
	correctIDs := lo.FilterMap(req.QuizResults, func(r quizResult, _ int) (int64, bool) {
		return r.WordID, r.IsCorrect != nil && *r.IsCorrect
	})

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(correctIDs) == 0 {
			return nil
		}
		if err := tx.Model(&CycleWord{}).
			Where("cycle_id = ? AND vocabulary_id IN ?", cycle.ID, correctIDs).
			Update("status", statusLearned).Error; err != nil {
			return err
		}
		for _, wordID := range correctIDs {
			record := LearnedWord{AccountID: account.ID, VocabularyID: wordID, LearnedAt: now}
			if err := tx.Where("account_id = ? AND vocabulary_id = ?", account.ID, wordID).
				FirstOrCreate(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	var total, learned int64
	if err := s.db.Model(&CycleWord{}).Where("cycle_id = ?", cycle.ID).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if err := s.db.Model(&CycleWord{}).Where("cycle_id = ? AND status = ?", cycle.ID, statusLearned).Count(&learned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	score := 0
	if len(req.QuizResults) > 0 {
		score = len(correctIDs) * 100 / len(req.QuizResults)
	}
	c.JSON(http.StatusOK, gin.H{
		"total_words":   total,
		"learned_words": learned,
		"pending_words": total - learned,
		"score":         score,
	})
}
