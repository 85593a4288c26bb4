package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/swipe-recommender/internal/swipe"
	"github.com/spigell/swipe-recommender/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Pitcher asks Gemini for a one-line pitch of a job to a worker.
type Pitcher struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewPitcher(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Pitcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pitcher{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (p *Pitcher) Pitch(ctx context.Context, worker *swipe.Worker, job *swipe.Job) (string, error) {
	if worker == nil {
		return "", fmt.Errorf("worker is required")
	}
	if job == nil {
		return "", fmt.Errorf("job is required")
	}

	// Contact details never leave the service.
	workerPayload := map[string]any{
		"firstName":        worker.Name.First,
		"hasDriverLicense": worker.HasDriverLicense,
		"transportation":   worker.Transportation,
		"skills":           worker.Skills,
		"certificates":     worker.Certificates,
	}

	workerJSON, err := json.MarshalIndent(workerPayload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal worker payload: %w", err)
	}

	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal job payload: %w", err)
	}

	prompt := buildPrompt(string(workerJSON), string(jobJSON))

	p.logger.Debug("gemini generate content request",
		zap.Int64("job_id", job.ID),
		zap.Int64("worker_id", worker.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, p.maxLogLen)),
	)

	raw, err := p.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	p.logger.Debug("gemini generate content response",
		zap.Int64("job_id", job.ID),
		zap.Int64("worker_id", worker.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, p.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(workerJSON, jobJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Worker:\n{{WORKER_JSON}}\n\nJob:\n{{JOB_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{WORKER_JSON}}", workerJSON)
	prompt = strings.ReplaceAll(prompt, "{{JOB_JSON}}", jobJSON)
	return prompt
}

func parseResponse(raw string) (string, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}

	message := coerceString(data["message"])
	if message == "" {
		return "", errors.New("gemini response has no message")
	}

	return message, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
