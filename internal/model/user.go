package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an account record. PasswordHash is a bcrypt hash and never
// leaves the auth service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	JoinDate     time.Time `json:"joinDate"`
	PasswordHash string    `json:"passwordHash,omitempty"`
}

// UserStats accumulates lifetime exam results for one user.
// CorrectAnswers never exceeds TotalQuestionsAnswered.
type UserStats struct {
	ExamsTaken             int `json:"examsTaken"`
	TotalQuestionsAnswered int `json:"totalQuestionsAnswered"`
	CorrectAnswers         int `json:"correctAnswers"`
}
