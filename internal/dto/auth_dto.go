package dto

import "time"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinDate time.Time `json:"join_date"`
}

// AuthResponse carries the bearer token the client presents on
// subsequent requests.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// StatsResponse is a user's lifetime exam statistics.
type StatsResponse struct {
	ExamsTaken             int `json:"exams_taken"`
	TotalQuestionsAnswered int `json:"total_questions_answered"`
	CorrectAnswers         int `json:"correct_answers"`
}
