package rest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/samber/lo"

	"github.com/stulang/stulang/internal/entity"
)

type cycleDTO struct {
	ID    int64     `json:"cycle_id"`
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

func (d cycleDTO) toEntity() *entity.Cycle {
	return &entity.Cycle{ID: d.ID, Start: d.Start, End: d.End}
}

type durationDTO struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

type wordDTO struct {
	ID            int64  `json:"id"`
	Word          string `json:"word"`
	Definition    string `json:"definition"`
	Example       string `json:"example,omitempty"`
	Level         string `json:"level,omitempty"`
	Topic         string `json:"topic,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Synonyms      string `json:"synonyms,omitempty"`
	PartOfSpeech  string `json:"part_of_speech,omitempty"`
	AudioURL      string `json:"audio_url,omitempty"`
}

func (d wordDTO) toEntity() entity.Word {
	return entity.Word{
		ID:            d.ID,
		Word:          d.Word,
		Definition:    d.Definition,
		Example:       d.Example,
		Level:         entity.Level(d.Level),
		Topic:         d.Topic,
		Pronunciation: d.Pronunciation,
		Synonyms:      d.Synonyms,
		PartOfSpeech:  d.PartOfSpeech,
		AudioURL:      d.AudioURL,
	}
}

// cycleWordDTO is a dictionary entry flattened together with its cycle
// status, the shape the vocabulary listing endpoints use.
type cycleWordDTO struct {
	wordDTO
	Status string `json:"status"`
}

func (d cycleWordDTO) toEntity() entity.CycleWord {
	word := d.wordDTO.toEntity()
	return entity.CycleWord{
		WordID: d.ID,
		Status: entity.WordStatus(d.Status),
		Word:   &word,
	}
}

type questionDTO struct {
	WordID        int64    `json:"word_id"`
	Word          string   `json:"word"`
	Pronunciation string   `json:"pronunciation,omitempty"`
	Example       string   `json:"example,omitempty"`
	Level         string   `json:"level,omitempty"`
	Topic         string   `json:"topic,omitempty"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
}

func (d questionDTO) toEntity() entity.Question {
	return entity.Question{
		WordID:        d.WordID,
		Word:          d.Word,
		Pronunciation: d.Pronunciation,
		Example:       d.Example,
		Level:         entity.Level(d.Level),
		Topic:         d.Topic,
		Choices:       d.Choices,
		CorrectIndex:  lo.IndexOf(d.Choices, d.CorrectAnswer),
	}
}

type quizResultDTO struct {
	WordID         int64 `json:"word_id"`
	SelectedAnswer int   `json:"selected_answer"`
	IsCorrect      bool  `json:"is_correct"`
}

type practiceReportDTO struct {
	TotalWords   int `json:"total_words"`
	LearnedWords int `json:"learned_words"`
	PendingWords int `json:"pending_words"`
	Score        int `json:"score"`
}

func (d practiceReportDTO) toEntity() *entity.PracticeReport {
	return &entity.PracticeReport{
		TotalWords:   d.TotalWords,
		LearnedWords: d.LearnedWords,
		PendingWords: d.PendingWords,
		Score:        d.Score,
	}
}

type learnedWordDTO struct {
	wordDTO
	LearnedAt time.Time `json:"learned_at"`
}

func (d learnedWordDTO) toEntity() entity.LearnedWord {
	word := d.wordDTO.toEntity()
	return entity.LearnedWord{WordID: d.ID, LearnedAt: d.LearnedAt, Word: &word}
}

type statisticsDTO struct {
	TotalCount        int            `json:"total_count"`
	LearnedCount      int            `json:"learned_count"`
	RemainingCount    int            `json:"remaining_count"`
	LevelDistribution map[string]int `json:"level_distribution"`
	TopicDistribution map[string]int `json:"topic_distribution"`
}

func (d statisticsDTO) toEntity() *entity.VocabularyStatistics {
	return &entity.VocabularyStatistics{
		TotalCount:        d.TotalCount,
		LearnedCount:      d.LearnedCount,
		RemainingCount:    d.RemainingCount,
		LevelDistribution: d.LevelDistribution,
		TopicDistribution: d.TopicDistribution,
	}
}

type chatExchangeDTO struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

func (d chatExchangeDTO) toEntity() entity.ChatExchange {
	return entity.ChatExchange{ID: d.ID, Message: d.Message, Response: d.Response, At: d.CreatedAt}
}

type userDTO struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (d userDTO) toEntity() *entity.User {
	return &entity.User{ID: d.UserID, Username: d.Username, Email: d.Email, Role: entity.Role(d.Role)}
}

// pagedResponse tolerates both listing shapes the API has shipped: the
// paged object and the older bare array. The array shape carries no
// totals, so it is treated as a single complete page.
type pagedResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

func (p *pagedResponse[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &p.Items); err != nil {
			return err
		}
		p.Total = len(p.Items)
		p.Page = 1
		p.Pages = 1
		return nil
	}

	type plain pagedResponse[T]
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = pagedResponse[T](obj)
	return nil
}
