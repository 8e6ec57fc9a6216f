package dto

// BankResponse is the full question bank listing.
type BankResponse struct {
	Questions []QuestionDTO `json:"questions"`
	Count     int           `json:"count"`
}

// ReplaceBankRequest replaces the stored bank wholesale (admin).
type ReplaceBankRequest struct {
	Questions []UpdateQuestionRequest `json:"questions" binding:"required,dive"`
}

// UpdateQuestionRequest edits a single bank question (admin).
type UpdateQuestionRequest struct {
	ID             string   `json:"id"`
	Text           string   `json:"question" binding:"required"`
	Type           string   `json:"type" binding:"required,oneof='Multiple Choice' 'True/False' 'Short Answer'"`
	Specialization string   `json:"specialization" binding:"required"`
	Options        []string `json:"options"`
	Answer         string   `json:"answer" binding:"required"`
	IsGenerated    bool     `json:"isGenerated"`
}
