package dto

// StartExamRequest is bound from the multipart form that starts an exam.
// The document file part is read separately by the controller and is
// required only in PDF mode.
type StartExamRequest struct {
	Specialization string `form:"specialization" binding:"required"`
	NumQuestions   int    `form:"num_questions" binding:"required,min=1"`
	QuestionType   string `form:"question_type" binding:"required"`
	Difficulty     string `form:"difficulty" binding:"required"`
	Mode           string `form:"mode" binding:"required,oneof=Standard Smart PDF"`
}

// AnswerRequest upserts the user's answer for one question index.
// Index is a pointer so that 0 survives required-binding.
type AnswerRequest struct {
	Index *int   `json:"index" binding:"required"`
	Value string `json:"value"`
}

// QuestionDTO is the question shape exposed to clients. Answer is omitted
// while an exam is active and filled in for finished/review renderings.
type QuestionDTO struct {
	ID             string   `json:"id"`
	Text           string   `json:"question"`
	Type           string   `json:"type"`
	Specialization string   `json:"specialization"`
	Options        []string `json:"options,omitempty"`
	Answer         string   `json:"answer,omitempty"`
	IsGenerated    bool     `json:"isGenerated"`
}

// SessionResponse is the read-only rendering of the exam session.
type SessionResponse struct {
	State     string         `json:"state"`
	Questions []QuestionDTO  `json:"questions"`
	Answers   map[int]string `json:"answers"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Message   string         `json:"message,omitempty"`
	Warning   string         `json:"warning,omitempty"`
}

// SubmitResponse reports the final score of a submitted exam.
type SubmitResponse struct {
	Score int `json:"score"`
	Total int `json:"total"`
}
