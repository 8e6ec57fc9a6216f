package user

import (
	"net/http"

	"github.com/aalkhodiry/ikhtibar/internal/dto"
	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type BankController struct {
	bankSvc service.QuestionBankService
}

func NewBankController(bankSvc service.QuestionBankService) *BankController {
	return &BankController{bankSvc: bankSvc}
}

// GetBank godoc
// @Summary List the accumulated question bank
// @Tags Question Bank
// @Produce json
// @Success 200 {object} dto.BankResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bank [get]
func (c *BankController) GetBank(ctx *gin.Context) {
	questions, err := c.bankSvc.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("GetBank: failed to load question bank")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load question bank", Details: []string{err.Error()}})
		return
	}

	dtos := make([]dto.QuestionDTO, 0, len(questions))
	for _, q := range questions {
		var qd dto.QuestionDTO
		if err := copier.Copy(&qd, &q); err != nil {
			log.Error().Err(err).Str("questionID", q.ID).Msg("Failed to map bank question to DTO")
			continue
		}
		dtos = append(dtos, qd)
	}
	ctx.JSON(http.StatusOK, dto.BankResponse{Questions: dtos, Count: len(dtos)})
}

// ClearBank godoc
// @Summary Empty the question bank
// @Tags Question Bank
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bank [delete]
func (c *BankController) ClearBank(ctx *gin.Context) {
	if err := c.bankSvc.Clear(); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to clear question bank", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "question bank cleared"})
}

// ReplaceBank godoc
// @Summary Replace the question bank wholesale (admin)
// @Tags Question Bank
// @Accept json
// @Produce json
// @Param bank body dto.ReplaceBankRequest true "Full question list"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bank [put]
func (c *BankController) ReplaceBank(ctx *gin.Context) {
	var req dto.ReplaceBankRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question list", Details: []string{err.Error()}})
		return
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for _, qr := range req.Questions {
		var q model.Question
		if err := copier.Copy(&q, &qr); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question payload", Details: []string{err.Error()}})
			return
		}
		questions = append(questions, q)
	}
	if err := c.bankSvc.SetAll(questions); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to replace question bank", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "question bank replaced"})
}

// UpdateQuestion godoc
// @Summary Edit a bank question (admin)
// @Tags Question Bank
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param question body dto.UpdateQuestionRequest true "Updated question"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /bank/{id} [put]
func (c *BankController) UpdateQuestion(ctx *gin.Context) {
	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question payload", Details: []string{err.Error()}})
		return
	}

	var question model.Question
	if err := copier.Copy(&question, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question payload", Details: []string{err.Error()}})
		return
	}
	question.ID = ctx.Param("id")

	if err := c.bankSvc.Update(question); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "question updated"})
}

// DeleteQuestion godoc
// @Summary Remove a bank question (admin)
// @Tags Question Bank
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /bank/{id} [delete]
func (c *BankController) DeleteQuestion(ctx *gin.Context) {
	if err := c.bankSvc.Delete(ctx.Param("id")); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "question deleted"})
}
