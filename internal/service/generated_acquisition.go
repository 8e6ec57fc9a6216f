package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/rs/zerolog/log"
)

// documentContextLimit caps how much extracted document text is forwarded
// to the generator.
const documentContextLimit = 30000

// GenerateRequest is the contract with the external question generator.
// ContextText, when non-empty, is the sole grounding material: the
// generator is instructed to rely only on it and to infer the
// specialization when ambiguous.
type GenerateRequest struct {
	Specialization model.Specialization
	Count          int
	QuestionType   model.QuestionType
	Difficulty     model.Difficulty
	ContextText    string
}

// QuestionGenerator is the external generation collaborator. Returned
// questions carry no id and no provenance flag; the acquisition layer
// assigns both.
type QuestionGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) ([]model.Question, error)
}

// smartAcquisition delegates to the generator without grounding text and
// merges the results into the question bank before handing them out.
type smartAcquisition struct {
	generator QuestionGenerator
	bank      QuestionBankService
}

func NewSmartAcquisition(generator QuestionGenerator, bank QuestionBankService) AcquisitionService {
	return &smartAcquisition{generator: generator, bank: bank}
}

func (s *smartAcquisition) Acquire(ctx context.Context, cfg model.ExamConfig) (AcquisitionResult, error) {
	return generateAndMerge(ctx, s.generator, s.bank, GenerateRequest{
		Specialization: cfg.Specialization,
		Count:          cfg.NumQuestions,
		QuestionType:   cfg.QuestionType,
		Difficulty:     cfg.Difficulty,
	})
}

// pdfAcquisition grounds the generator on extracted document text.
type pdfAcquisition struct {
	generator QuestionGenerator
	bank      QuestionBankService
}

func NewPDFAcquisition(generator QuestionGenerator, bank QuestionBankService) AcquisitionService {
	return &pdfAcquisition{generator: generator, bank: bank}
}

func (s *pdfAcquisition) Acquire(ctx context.Context, cfg model.ExamConfig) (AcquisitionResult, error) {
	if strings.TrimSpace(cfg.DocumentText) == "" {
		return AcquisitionResult{}, ErrEmptyDocument
	}

	contextText := cfg.DocumentText
	if len(contextText) > documentContextLimit {
		contextText = contextText[:documentContextLimit]
	}

	return generateAndMerge(ctx, s.generator, s.bank, GenerateRequest{
		Specialization: cfg.Specialization,
		Count:          cfg.NumQuestions,
		QuestionType:   cfg.QuestionType,
		Difficulty:     cfg.Difficulty,
		ContextText:    contextText,
	})
}

// generateAndMerge runs the generator and writes the results into the bank.
// The merge completes, successfully or not, before the question set is
// returned, so a reload never observes a session built from questions the
// bank has not yet seen. A failed merge degrades to a warning; the
// acquisition itself is not rolled back.
func generateAndMerge(ctx context.Context, generator QuestionGenerator, bank QuestionBankService, req GenerateRequest) (AcquisitionResult, error) {
	questions, err := generator.Generate(ctx, req)
	if err != nil {
		// The collaborator's message is kept verbatim for diagnostics.
		return AcquisitionResult{}, fmt.Errorf("%w: %s", ErrGenerationFailed, err.Error())
	}
	if len(questions) == 0 {
		return AcquisitionResult{}, fmt.Errorf("%w: generator returned no questions", ErrGenerationFailed)
	}

	result := AcquisitionResult{Questions: questions}
	if _, err := bank.Merge(questions); err != nil {
		if !errors.Is(err, ErrPersistence) {
			return AcquisitionResult{}, err
		}
		log.Warn().Err(err).Msg("Generated questions could not be persisted to the bank")
		result.PersistenceWarning = fmt.Sprintf("generated questions could not be saved to the question bank: %s", err.Error())
	}
	return result, nil
}
