package lessons

// Flashcard is a question/answer pair.
type Flashcard struct {
	Front string
	Back  string
}

// QuizSource records how a quiz was obtained.
type QuizSource string

const (
	// QuizStructured means the reply validated against QuizSchema.
	QuizStructured QuizSource = "structured"
	// QuizParsed means the lenient text parser found a question block.
	QuizParsed QuizSource = "parsed"
	// QuizTemplate means nothing usable came back.
	QuizTemplate QuizSource = "template"
)

// Quiz is a four-option multiple choice question.
type Quiz struct {
	Question     string
	Options      []string
	CorrectIndex int
	Explanation  string
	Source       QuizSource
}

// IsCorrect reports whether choice is the right option.
func (q Quiz) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

// Difficulty levels accepted by Quiz.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)
