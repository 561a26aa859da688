package localserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// listParams carries the common skip/limit/sort query parameters.
type listParams struct {
	Skip     int
	Limit    int
	SortBy   string
	SortDesc bool
}

var sortColumns = map[string]string{
	"word_id": "vocabularies.id",
	"word":    "vocabularies.word",
	"level":   "vocabularies.level",
}

func parseListParams(c *gin.Context) (listParams, bool) {
	p := listParams{Limit: 20}
	if raw := c.Query("skip"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "skip must be a non-negative integer"})
			return p, false
		}
		p.Skip = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "limit must be a positive integer"})
			return p, false
		}
		p.Limit = v
	}
	if key := c.Query("sort_by"); key != "" {
		if _, ok := sortColumns[key]; !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "unsupported sort_by " + strconv.Quote(key)})
			return p, false
		}
		p.SortBy = key
	}
	p.SortDesc = c.Query("sort_order") == "desc"
	return p, true
}

func (p listParams) order() string {
	column, ok := sortColumns[p.SortBy]
	if !ok {
		column = sortColumns["word_id"]
	}
	if p.SortDesc {
		return column + " desc"
	}
	return column
}

func pagedJSON(c *gin.Context, items any, total int64, p listParams) {
	pages := 0
	page := 1
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
		page = p.Skip/p.Limit + 1
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"pages": pages,
	})
}

func vocabularyFilters(c *gin.Context, tx *gorm.DB) *gorm.DB {
	if level := c.Query("level"); level != "" {
		tx = tx.Where("vocabularies.level = ?", level)
	}
	if topic := c.Query("topic"); topic != "" {
		tx = tx.Where("vocabularies.topic = ?", topic)
	}
	if pos := c.Query("part_of_speech"); pos != "" {
		tx = tx.Where("vocabularies.part_of_speech = ?", pos)
	}
	return tx
}

func (s *Server) handleListVocabulary(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}

	query := vocabularyFilters(c, s.db.Model(&Vocabulary{}))
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	var words []Vocabulary
	if err := query.Order(p.order()).Offset(p.Skip).Limit(p.Limit).Find(&words).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	pagedJSON(c, words, total, p)
}

func (s *Server) handleSearchVocabulary(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "keyword is required"})
		return
	}

	var words []Vocabulary
	err := s.db.
		Where("word LIKE ? OR definition LIKE ?", "%"+keyword+"%", "%"+keyword+"%").
		Order("word").
		Limit(50).
		Find(&words).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, words)
}

func (s *Server) handleGetVocabulary(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "id must be an integer"})
		return
	}

	var word Vocabulary
	if err := s.db.First(&word, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "word not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, word)
}

func (s *Server) handleTopics(c *gin.Context) {
	var topics []string
	if err := s.db.Model(&Vocabulary{}).Distinct("topic").Where("topic <> ''").Order("topic").Pluck("topic", &topics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, topics)
}

func (s *Server) handleLevels(c *gin.Context) {
	var levels []string
	if err := s.db.Model(&Vocabulary{}).Distinct("level").Where("level <> ''").Order("level").Pluck("level", &levels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, levels)
}

func (s *Server) handleStatistics(c *gin.Context) {
	account := s.account(c)

	var total, learned int64
	if err := s.db.Model(&Vocabulary{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if err := s.db.Model(&LearnedWord{}).Where("account_id = ?", account.ID).Count(&learned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	levelDist, err := s.distribution("level")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	topicDist, err := s.distribution("topic")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_count":        total,
		"learned_count":      learned,
		"remaining_count":    total - learned,
		"level_distribution": levelDist,
		"topic_distribution": topicDist,
	})
}

func (s *Server) distribution(column string) (map[string]int, error) {
	type row struct {
		Key   string
		Count int
	}
	var rows []row
	err := s.db.Model(&Vocabulary{}).
		Select(column + " as key, count(*) as count").
		Where(column + " <> ''").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(rows, func(r row) (string, int) { return r.Key, r.Count }), nil
}

// cycleWordRow joins a vocabulary entry with its status in the cycle.
type cycleWordRow struct {
	Vocabulary
	Status string `json:"status"`
}

func (s *Server) handleListCycleWords(c *gin.Context) {
	cycle, ok := s.activeCycle(c)
	if !ok {
		return
	}
	p, ok := parseListParams(c)
	if !ok {
		return
	}

	base := vocabularyFilters(c, s.db.Model(&Vocabulary{})).
		Joins("JOIN cycle_words ON cycle_words.vocabulary_id = vocabularies.id").
		Where("cycle_words.cycle_id = ?", cycle.ID)
	if search := c.Query("search"); search != "" {
		base = base.Where("vocabularies.word LIKE ?", "%"+search+"%")
	}
	if status := c.Query("status"); status != "" {
		base = base.Where("cycle_words.status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	var rows []cycleWordRow
	err := base.Select("vocabularies.*, cycle_words.status").
		Order(p.order()).
		Offset(p.Skip).
		Limit(p.Limit).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	pagedJSON(c, rows, total, p)
}

type addCycleWordRequest struct {
	WordID int64 `json:"word_id" binding:"required"`
}

func (s *Server) handleAddCycleWord(c *gin.Context) {
	account := s.account(c)
	now := s.clock()

	var cycle Cycle
	err := s.db.Where("account_id = ?", account.ID).Order("id desc").First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "no active cycle"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if cycle.expired(now) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cycle has expired"})
		return
	}

	var req addCycleWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	var word Vocabulary
	if err := s.db.First(&word, req.WordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "word not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	var existing int64
	if err := s.db.Model(&CycleWord{}).
		Where("cycle_id = ? AND vocabulary_id = ?", cycle.ID, word.ID).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "word already in current cycle"})
		return
	}

	item := CycleWord{CycleID: cycle.ID, VocabularyID: word.ID, Status: statusPending, AddedAt: now}
	if err := s.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cycleWordRow{Vocabulary: word, Status: statusPending})
}

func (s *Server) handleMarkLearned(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "id must be an integer"})
		return
	}

	var word Vocabulary
	if err := s.db.First(&word, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "word not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	account := s.account(c)
	now := s.clock()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		record := LearnedWord{AccountID: account.ID, VocabularyID: word.ID, LearnedAt: now}
		if err := tx.Where("account_id = ? AND vocabulary_id = ?", account.ID, word.ID).
			FirstOrCreate(&record).Error; err != nil {
			return err
		}
		// Promote the word inside the current cycle too, when present.
		return tx.Model(&CycleWord{}).
			Where("vocabulary_id = ? AND cycle_id IN (?)",
				word.ID,
				tx.Session(&gorm.Session{NewDB: true}).Model(&Cycle{}).Select("id").Where("account_id = ?", account.ID)).
			Update("status", statusLearned).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "marked as learned"})
}

type learnedWordRow struct {
	Vocabulary
	LearnedAt time.Time `json:"learned_at"`
}

func (s *Server) handleLearnedWords(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	account := s.account(c)

	base := s.db.Model(&Vocabulary{}).
		Joins("JOIN learned_words ON learned_words.vocabulary_id = vocabularies.id").
		Where("learned_words.account_id = ?", account.ID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	var rows []learnedWordRow
	err := base.Select("vocabularies.*, learned_words.learned_at").
		Order("learned_words.learned_at desc").
		Offset(p.Skip).
		Limit(p.Limit).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	pagedJSON(c, rows, total, p)
}
