package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aalkhodiry/ikhtibar/internal/controller"
	"github.com/aalkhodiry/ikhtibar/internal/dto"
	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authSvc  service.AuthService
	statsSvc service.UserStatsService
}

func NewAuthController(authSvc service.AuthService, statsSvc service.UserStatsService) *AuthController {
	return &AuthController{authSvc: authSvc, statsSvc: statsSvc}
}

// Register godoc
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterRequest true "Email, password and optional role"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid registration payload", Details: []string{err.Error()}})
		return
	}
	role := model.RoleUser
	if req.Role == string(model.RoleAdmin) {
		role = model.RoleAdmin
	}

	user, token, err := c.authSvc.Register(req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("Register: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Registration failed", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, authResponse(user, token))
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse "Incorrect email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid login payload", Details: []string{err.Error()}})
		return
	}

	user, token, err := c.authSvc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("Login: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Login failed", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, authResponse(user, token))
}

// Logout godoc
// @Summary Invalidate the current session token
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	header := ctx.GetHeader("Authorization")
	c.authSvc.Logout(strings.TrimSpace(strings.TrimPrefix(header, "Bearer")))
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// Me godoc
// @Summary Get the authenticated account
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, _ := controller.CurrentUser(ctx)
	var ud dto.UserDTO
	if err := copier.Copy(&ud, &user); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to render account", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, ud)
}

// MyStats godoc
// @Summary Get the authenticated user's lifetime exam statistics
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/me/stats [get]
func (c *AuthController) MyStats(ctx *gin.Context) {
	user, _ := controller.CurrentUser(ctx)
	stats, err := c.statsSvc.Get(user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load statistics", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.StatsResponse{
		ExamsTaken:             stats.ExamsTaken,
		TotalQuestionsAnswered: stats.TotalQuestionsAnswered,
		CorrectAnswers:         stats.CorrectAnswers,
	})
}

// ResetMyStats godoc
// @Summary Reset the authenticated user's statistics to zero
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/me/stats [delete]
func (c *AuthController) ResetMyStats(ctx *gin.Context) {
	user, _ := controller.CurrentUser(ctx)
	if err := c.statsSvc.Reset(user.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to reset statistics", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "statistics reset"})
}

func authResponse(user model.User, token string) dto.AuthResponse {
	var ud dto.UserDTO
	copier.Copy(&ud, &user)
	return dto.AuthResponse{Token: token, User: ud}
}
