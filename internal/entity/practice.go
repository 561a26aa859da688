package entity

// Question is one multiple-choice prompt of a practice set. It is
// generated server-side from the cycle's pending items and discarded
// after submission.
type Question struct {
	WordID        int64
	Word          string
	Pronunciation string
	Example       string
	Level         Level
	Topic         string
	Choices       []string
	CorrectIndex  int
}

// QuizResult is the client-computed outcome for a single question,
// submitted once as part of a batch.
type QuizResult struct {
	WordID         int64
	SelectedAnswer int
	IsCorrect      bool
}

// PracticeReport is the server's account of a submitted batch: how many
// items were promoted to learned and how many stay pending. The score
// here is the server's integer rendering; clients keep their own exact
// fractional score.
type PracticeReport struct {
	TotalWords   int
	LearnedWords int
	PendingWords int
	Score        int
}
