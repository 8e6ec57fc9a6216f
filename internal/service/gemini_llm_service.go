package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aalkhodiry/ikhtibar/config"
	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const geminiModelName = "gemini-2.5-flash"

type geminiQuestionGenerator struct {
	client *genai.Client
	cfg    *config.Config
}

// NewGeminiQuestionGenerator builds the Gemini-backed generator. Without an
// API key the service still constructs but Generate fails, so Standard-mode
// exams keep working on a partially configured instance.
func NewGeminiQuestionGenerator(cfg *config.Config) (QuestionGenerator, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Question generation will be non-functional.")
		return &geminiQuestionGenerator{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiQuestionGenerator{client: client, cfg: cfg}, nil
}

// questionSchema constrains the model to the exact question shape the exam
// expects, so the response parses without prose stripping.
func questionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question text.",
				},
				"type": {
					Type: genai.TypeString,
					Enum: []string{
						string(model.MultipleChoice),
						string(model.TrueFalse),
						string(model.ShortAnswer),
					},
					Description: "The type of the question.",
				},
				"specialization": {
					Type: genai.TypeString,
					Enum: []string{
						string(model.SoftwareEngineering),
						string(model.NetworkEngineering),
						string(model.ArtificialIntelligence),
						string(model.General),
					},
					Description: "The specialization domain of the question.",
				},
				"options": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "Options for multiple choice questions. Empty for other types.",
				},
				"answer": {
					Type:        genai.TypeString,
					Description: "The correct answer. For multiple choice, must be one of the options.",
				},
			},
			Required: []string{"question", "type", "specialization", "answer"},
		},
	}
}

// generatedQuestion mirrors the JSON shape the model is asked for.
type generatedQuestion struct {
	Question       string               `json:"question"`
	Type           model.QuestionType   `json:"type"`
	Specialization model.Specialization `json:"specialization"`
	Options        []string             `json:"options"`
	Answer         string               `json:"answer"`
}

func (g *geminiQuestionGenerator) Generate(ctx context.Context, req GenerateRequest) ([]model.Question, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini client not initialized (GEMINI_API_KEY missing)")
	}

	gm := g.client.GenerativeModel(geminiModelName)
	gm.ResponseMIMEType = "application/json"
	gm.ResponseSchema = questionSchema()
	if req.ContextText != "" {
		// Stay factual when grounded on a document, more creative otherwise.
		gm.SetTemperature(0.5)
	} else {
		gm.SetTemperature(0.8)
	}

	resp, err := gm.GenerateContent(ctx, genai.Text(buildGenerationPrompt(req)))
	if err != nil {
		log.Error().Err(err).Str("specialization", string(req.Specialization)).Msg("Gemini API error during question generation")
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return nil, fmt.Errorf("gemini returned no content")
	}

	raw := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw += string(txt)
		}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	var parsed []generatedQuestion
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse question list from Gemini response")
		return nil, fmt.Errorf("could not parse generated questions: %w", err)
	}

	// More results than requested would violate the generator contract;
	// fewer are tolerated.
	if len(parsed) > req.Count {
		parsed = parsed[:req.Count]
	}

	questions := make([]model.Question, 0, len(parsed))
	for _, q := range parsed {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		options := q.Options
		if q.Type != model.MultipleChoice {
			options = nil
		}
		questions = append(questions, model.Question{
			ID:             uuid.NewString(),
			Text:           q.Question,
			Type:           q.Type,
			Specialization: q.Specialization,
			Options:        options,
			Answer:         q.Answer,
			IsGenerated:    true,
		})
	}
	return questions, nil
}

func buildGenerationPrompt(req GenerateRequest) string {
	var b strings.Builder

	if req.ContextText != "" {
		b.WriteString("You are an expert exam creator. Your task is to generate a list of exam questions based *only* on the provided text content from a document. Do not use any external knowledge.\n\n")
		b.WriteString("Provided Content:\n---\n")
		b.WriteString(req.ContextText)
		b.WriteString("\n---\n\n")
		fmt.Fprintf(&b, "The specialization for these questions should be inferred from the text, or set to %q if it is ambiguous.\n", model.General)
	} else {
		b.WriteString("You are an expert exam creator for a unified informatics engineering exam. Your task is to generate a list of exam questions.\n\n")
		fmt.Fprintf(&b, "The specialization for the questions is: %q.\n", req.Specialization)
	}

	b.WriteString("\nInstructions:\n")
	fmt.Fprintf(&b, "1. Generate exactly %d questions.\n", req.Count)
	fmt.Fprintf(&b, "2. The difficulty level for all questions should be: %s.\n", req.Difficulty)
	fmt.Fprintf(&b, "3. The type for all questions should be: %s.\n", req.QuestionType)
	if req.ContextText != "" {
		b.WriteString("4. The 'specialization' field must be inferred from the provided text.\n")
	} else {
		fmt.Fprintf(&b, "4. The 'specialization' field must be set to %q.\n", req.Specialization)
	}
	fmt.Fprintf(&b, "5. For %q questions, provide exactly 4 distinct options, one of which is the correct answer.\n", model.MultipleChoice)
	fmt.Fprintf(&b, "6. For %q and %q questions, the 'options' array must be empty.\n", model.TrueFalse, model.ShortAnswer)
	b.WriteString("7. The 'answer' field must always contain the correct answer. For multiple choice it must exactly match one of the options.\n")
	b.WriteString("8. If the provided context is insufficient to generate the required number of questions, generate as many as you can.\n")

	return b.String()
}
