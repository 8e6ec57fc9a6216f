package user

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aalkhodiry/ikhtibar/internal/controller"
	"github.com/aalkhodiry/ikhtibar/internal/dto"
	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	sessionSvc service.ExamSessionService
	extractor  service.TextExtractor
}

func NewExamController(sessionSvc service.ExamSessionService, extractor service.TextExtractor) *ExamController {
	return &ExamController{sessionSvc: sessionSvc, extractor: extractor}
}

// GetSession godoc
// @Summary Get the current exam session
// @Description Read-only snapshot of the session state, questions, answers and score. Correct answers are hidden while the exam is active.
// @Tags Exam
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /exam [get]
func (c *ExamController) GetSession(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, sessionResponse(c.sessionSvc.Snapshot()))
}

// StartExam godoc
// @Summary Start a new exam
// @Description Builds a question set for the given configuration (Standard catalog, Smart generation, or PDF-grounded generation) and activates the session. PDF mode requires a 'document' file part.
// @Tags Exam
// @Accept mpfd
// @Produce json
// @Param specialization formData string true "Specialization"
// @Param num_questions formData int true "Number of questions"
// @Param question_type formData string true "Question type"
// @Param difficulty formData string true "Difficulty"
// @Param mode formData string true "Exam mode" Enums(Standard, Smart, PDF)
// @Param document formData file false "Source document (PDF mode only)"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Configuration or acquisition failure"
// @Router /exam/start [post]
func (c *ExamController) StartExam(ctx *gin.Context) {
	var req dto.StartExamRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam configuration", Details: []string{err.Error()}})
		return
	}

	cfg := model.ExamConfig{
		Specialization: model.Specialization(req.Specialization),
		NumQuestions:   req.NumQuestions,
		QuestionType:   model.QuestionType(req.QuestionType),
		Difficulty:     model.Difficulty(req.Difficulty),
		Mode:           model.ExamMode(req.Mode),
	}

	if cfg.Mode == model.ModePDF {
		text, err := c.extractDocument(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("StartExam: document extraction failed")
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		cfg.DocumentText = text
	}

	if err := c.sessionSvc.Start(ctx.Request.Context(), cfg); err != nil {
		if errors.Is(err, service.ErrSessionBusy) {
			// A second start while one is pending is a no-op for the
			// caller; hand back the unchanged session.
			ctx.JSON(http.StatusOK, sessionResponse(c.sessionSvc.Snapshot()))
			return
		}
		snapshot := c.sessionSvc.Snapshot()
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: snapshot.Message, Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(c.sessionSvc.Snapshot()))
}

func (c *ExamController) extractDocument(ctx *gin.Context) (string, error) {
	fileHeader, err := ctx.FormFile("document")
	if err != nil {
		return "", fmt.Errorf("%w: PDF mode requires a document file", service.ErrInvalidConfiguration)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("opening uploaded document: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("reading uploaded document: %w", err)
	}
	return c.extractor.ExtractText(bytes.NewReader(data), int64(len(data)))
}

// SubmitAnswer godoc
// @Summary Record an answer for a question
// @Description Upserts the answer for the question at the given index. Only valid while the exam is active.
// @Tags Exam
// @Accept json
// @Produce json
// @Param answer body dto.AnswerRequest true "Question index and answer value"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Exam is not active"
// @Router /exam/answers [post]
func (c *ExamController) SubmitAnswer(ctx *gin.Context) {
	var req dto.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid answer payload", Details: []string{err.Error()}})
		return
	}
	if err := c.sessionSvc.Answer(*req.Index, req.Value); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrInvalidTransition) {
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "answer recorded"})
}

// SubmitExam godoc
// @Summary Submit the exam for scoring
// @Description Scores the active exam and finishes the session. When a user is authenticated their lifetime statistics are updated.
// @Tags Exam
// @Produce json
// @Success 200 {object} dto.SubmitResponse
// @Failure 409 {object} dto.ErrorResponse "Exam is not active"
// @Router /exam/submit [post]
func (c *ExamController) SubmitExam(ctx *gin.Context) {
	userID := ""
	if user, ok := controller.CurrentUser(ctx); ok {
		userID = user.ID
	}

	score, err := c.sessionSvc.Submit(userID)
	if err != nil {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.SubmitResponse{Score: score, Total: len(c.sessionSvc.Snapshot().Questions)})
}

// ReviewExam godoc
// @Summary Switch the finished exam into review
// @Tags Exam
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse "Exam is not finished"
// @Router /exam/review [post]
func (c *ExamController) ReviewExam(ctx *gin.Context) {
	if err := c.sessionSvc.Review(); err != nil {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(c.sessionSvc.Snapshot()))
}

// RestartExam godoc
// @Summary Discard the finished exam and return to configuration
// @Tags Exam
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse "Exam is not finished or in review"
// @Router /exam/restart [post]
func (c *ExamController) RestartExam(ctx *gin.Context) {
	if err := c.sessionSvc.Restart(); err != nil {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(c.sessionSvc.Snapshot()))
}

// sessionResponse renders a snapshot, hiding canonical answers until the
// session reaches a terminal state.
func sessionResponse(s service.SessionSnapshot) dto.SessionResponse {
	questions := make([]dto.QuestionDTO, 0, len(s.Questions))
	revealAnswers := s.State == model.StateFinished || s.State == model.StateReview
	for _, q := range s.Questions {
		var qd dto.QuestionDTO
		if err := copier.Copy(&qd, &q); err != nil {
			log.Error().Err(err).Str("questionID", q.ID).Msg("Failed to map question to DTO")
			continue
		}
		if !revealAnswers {
			qd.Answer = ""
		}
		questions = append(questions, qd)
	}
	return dto.SessionResponse{
		State:     string(s.State),
		Questions: questions,
		Answers:   s.Answers,
		Score:     s.Score,
		Total:     len(s.Questions),
		Message:   s.Message,
		Warning:   s.Warning,
	}
}
