package question

// Difficulty and category bounds for the corpus.
const (
	DifficultyMin = 1
	DifficultyMax = 3
	CategoryMin   = 1
	CategoryMax   = 24
)

// Answer is one answer option attached to a question. Content is opaque to
// this service; it is stored and served verbatim.
type Answer struct {
	AnswerID int    `json:"answer_id"`
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
}

// Question is an immutable corpus record. Identity is QuestionID; records are
// authored externally and never mutated by this service.
type Question struct {
	QuestionID   string   `json:"question_id"`
	DifficultyID int      `json:"difficulty_id"`
	CategoryID   int      `json:"category_id"`
	Text         string   `json:"text"`
	Answers      []Answer `json:"answers"`
}
