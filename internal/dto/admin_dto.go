package dto

// DashboardStatsResponse feeds the admin dashboard tiles.
type DashboardStatsResponse struct {
	UserCount     int `json:"user_count"`
	QuestionCount int `json:"question_count"`
}

// UpdateUserRequest changes a user's role (admin).
type UpdateUserRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}
