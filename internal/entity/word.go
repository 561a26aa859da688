package entity

import (
	"strings"
	"time"
)

// Level represents a CEFR vocabulary level.
type Level string

const (
	LevelA1 Level = "a1"
	LevelA2 Level = "a2"
	LevelB1 Level = "b1"
	LevelB2 Level = "b2"
	LevelC1 Level = "c1"
	LevelC2 Level = "c2"
)

// ParseLevel normalizes an arbitrary string into a known level, or the
// empty string when it matches none.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return Level(strings.ToLower(strings.TrimSpace(s)))
	default:
		return ""
	}
}

// Word is a canonical dictionary entry owned by the vocabulary store.
type Word struct {
	ID            int64
	Word          string
	Definition    string
	Example       string
	Level         Level
	Topic         string
	Pronunciation string
	Synonyms      string
	PartOfSpeech  string
	AudioURL      string
}

// WordStatus is the learning state of a word inside a cycle.
type WordStatus string

const (
	StatusPending WordStatus = "pending"
	StatusLearned WordStatus = "learned"
)

// CycleWord is a vocabulary item assigned to the active cycle. Status only
// ever moves pending -> learned; the server evicts learned items from the
// pending set.
type CycleWord struct {
	WordID int64
	Status WordStatus
	Word   *Word
}

// Learned reports whether the item has been promoted out of active learning.
func (cw CycleWord) Learned() bool { return cw.Status == StatusLearned }

// LearnedWord is a word the user has mastered, either by a correct test
// answer or by direct promotion.
type LearnedWord struct {
	WordID    int64
	LearnedAt time.Time
	Word      *Word
}

// VocabularyStatistics aggregates dictionary-wide progress counts.
type VocabularyStatistics struct {
	TotalCount        int
	LearnedCount      int
	RemainingCount    int
	LevelDistribution map[string]int
	TopicDistribution map[string]int
}
