// Package localserver is a self-contained StuLang backend for offline
// development. It implements the same HTTP contract the hosted API
// serves, backed by gorm with a seeded vocabulary corpus.
package localserver

import "time"

// Vocabulary is a canonical dictionary entry.
type Vocabulary struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	Word          string `gorm:"uniqueIndex;not null" json:"word"`
	Definition    string `gorm:"not null" json:"definition"`
	Example       string `json:"example,omitempty"`
	Level         string `gorm:"index" json:"level,omitempty"`
	Topic         string `gorm:"index" json:"topic,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Synonyms      string `json:"synonyms,omitempty"`
	PartOfSpeech  string `json:"part_of_speech,omitempty"`
	AudioURL      string `json:"audio_url,omitempty"`
}

// Account is a login identity. The dev server seeds a single account
// from config.
type Account struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Email        string
	Role         string
}

// Cycle is a study window. At most one unexpired cycle exists per
// account; creating a new one while the old is expired replaces it.
type Cycle struct {
	ID        int64 `gorm:"primaryKey"`
	AccountID int64 `gorm:"index;not null"`
	StartTime time.Time
	EndTime   time.Time
}

func (c Cycle) expired(now time.Time) bool { return !now.Before(c.EndTime) }

// CycleWord assigns a vocabulary entry to a cycle. Status only moves
// pending -> learned.
type CycleWord struct {
	ID           int64  `gorm:"primaryKey"`
	CycleID      int64  `gorm:"uniqueIndex:idx_cycle_word;not null"`
	VocabularyID int64  `gorm:"uniqueIndex:idx_cycle_word;not null"`
	Status       string `gorm:"index;default:pending"`
	AddedAt      time.Time
}

// LearnedWord records a mastered word, across cycles.
type LearnedWord struct {
	ID           int64 `gorm:"primaryKey"`
	AccountID    int64 `gorm:"uniqueIndex:idx_account_word;not null"`
	VocabularyID int64 `gorm:"uniqueIndex:idx_account_word;not null"`
	LearnedAt    time.Time
}

// ChatLog is one stored conversation turn.
type ChatLog struct {
	ID        int64 `gorm:"primaryKey"`
	AccountID int64 `gorm:"index;not null"`
	Message   string
	Response  string
	CreatedAt time.Time
}

const (
	statusPending = "pending"
	statusLearned = "learned"
)
