package admin

import (
	"errors"
	"net/http"

	"github.com/aalkhodiry/ikhtibar/internal/dto"
	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	authSvc service.AuthService
	bankSvc service.QuestionBankService
}

func NewAdminController(authSvc service.AuthService, bankSvc service.QuestionBankService) *AdminController {
	return &AdminController{authSvc: authSvc, bankSvc: bankSvc}
}

// GetDashboardStats godoc
// @Summary (Admin) Dashboard counters
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/dashboard [get]
func (c *AdminController) GetDashboardStats(ctx *gin.Context) {
	userCount, err := c.authSvc.UserCount()
	if err != nil {
		log.Error().Err(err).Msg("GetDashboardStats: failed to count users")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load dashboard stats", Details: []string{err.Error()}})
		return
	}
	questions, err := c.bankSvc.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("GetDashboardStats: failed to load question bank")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load dashboard stats", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.DashboardStatsResponse{UserCount: userCount, QuestionCount: len(questions)})
}

// ListUsers godoc
// @Summary (Admin) List all accounts
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.UserDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.authSvc.Users()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list users", Details: []string{err.Error()}})
		return
	}
	dtos := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		var ud dto.UserDTO
		if err := copier.Copy(&ud, &u); err != nil {
			log.Error().Err(err).Str("userID", u.ID).Msg("Failed to map user to DTO")
			continue
		}
		dtos = append(dtos, ud)
	}
	ctx.JSON(http.StatusOK, dtos)
}

// UpdateUser godoc
// @Summary (Admin) Change a user's role
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param update body dto.UpdateUserRequest true "New role"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id} [put]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid update payload", Details: []string{err.Error()}})
		return
	}

	user, err := c.authSvc.UpdateUserRole(ctx.Param("id"), model.Role(req.Role))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update user", Details: []string{err.Error()}})
		return
	}
	var ud dto.UserDTO
	copier.Copy(&ud, &user)
	ctx.JSON(http.StatusOK, ud)
}

// DeleteUser godoc
// @Summary (Admin) Delete an account
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.authSvc.DeleteUser(ctx.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete user", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "user deleted"})
}
