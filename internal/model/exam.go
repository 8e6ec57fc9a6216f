package model

// ExamMode selects the question acquisition strategy.
type ExamMode string

const (
	ModeStandard ExamMode = "Standard"
	ModeSmart    ExamMode = "Smart"
	ModePDF      ExamMode = "PDF"
)

// ExamState is the lifecycle state of the single exam session.
type ExamState string

const (
	StateConfig   ExamState = "CONFIG"
	StateActive   ExamState = "ACTIVE"
	StateFinished ExamState = "FINISHED"
	StateReview   ExamState = "REVIEW"
)

// ExamConfig is the configuration a session is started from.
// DocumentText carries the extracted document content and is required
// only in PDF mode.
type ExamConfig struct {
	Specialization Specialization
	NumQuestions   int
	QuestionType   QuestionType
	Difficulty     Difficulty
	Mode           ExamMode
	DocumentText   string
}
