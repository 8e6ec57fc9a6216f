package model

// QuestionType enumerates the supported question formats.
type QuestionType string

const (
	MultipleChoice QuestionType = "Multiple Choice"
	TrueFalse      QuestionType = "True/False"
	ShortAnswer    QuestionType = "Short Answer"
)

// Specialization is the topical tag applied to questions and exam configs.
type Specialization string

const (
	SoftwareEngineering    Specialization = "Software Engineering"
	NetworkEngineering     Specialization = "Network Engineering"
	ArtificialIntelligence Specialization = "Artificial Intelligence"
	General                Specialization = "General"
)

// Difficulty of generated questions.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Question is a single exam question. Options is non-empty only for
// multiple-choice questions, where Answer must equal one of the options.
// IsGenerated marks AI-produced questions as opposed to catalog or
// manually authored ones.
type Question struct {
	ID             string         `json:"id"`
	Text           string         `json:"question"`
	Type           QuestionType   `json:"type"`
	Specialization Specialization `json:"specialization"`
	Options        []string       `json:"options,omitempty"`
	Answer         string         `json:"answer"`
	IsGenerated    bool           `json:"isGenerated"`
}
