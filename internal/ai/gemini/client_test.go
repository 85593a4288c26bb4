package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModels struct {
	mu    sync.Mutex
	calls []string
	queue []fakeResponse
}

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]

	text := ""
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		text = contents[0].Parts[0].Text
	}
	f.calls = append(f.calls, model+":"+text)
	return res.resp, res.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func noWait(context.Context, time.Duration) error { return nil }

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	models.enqueue(nil, tempErr)
	models.enqueue(textResponse("retry ok"), nil)

	g := &Generator{
		models:     models,
		model:      "gemini-pro",
		maxRetries: 2,
		logger:     zap.NewNop(),
		wait:       noWait,
	}

	output, err := g.GenerateContent(context.Background(), "message")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
	for _, call := range models.calls {
		if call != "gemini-pro:message" {
			t.Fatalf("unexpected call: %q", call)
		}
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := &Generator{
		models:     models,
		model:      "gemini-pro",
		maxRetries: 2,
		logger:     zap.NewNop(),
		wait:       noWait,
	}

	_, err := g.GenerateContent(context.Background(), "msg")
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}

	// First attempt plus two retries.
	if len(models.calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(models.calls))
	}
}

func TestGeneratorZeroRetriesMakesSingleAttempt(t *testing.T) {
	for _, maxRetries := range []int{0, -1} {
		models := &fakeModels{}
		models.enqueue(nil, genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"})

		g := &Generator{models: models, model: "gemini-pro", maxRetries: maxRetries, logger: zap.NewNop(), wait: noWait}

		if _, err := g.GenerateContent(context.Background(), "msg"); err == nil {
			t.Fatalf("maxRetries %d: expected error", maxRetries)
		}
		if len(models.calls) != 1 {
			t.Fatalf("maxRetries %d: expected single call, got %d", maxRetries, len(models.calls))
		}
	}
}

func TestGeneratorModel(t *testing.T) {
	g := &Generator{model: "gemini-pro"}
	if g.Model() != "gemini-pro" {
		t.Fatalf("unexpected model: %q", g.Model())
	}

	var nilGenerator *Generator
	if nilGenerator.Model() != "" {
		t.Fatal("expected empty model for nil generator")
	}
}

func TestGeneratorDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	models := &fakeModels{}
	quotaErr := genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	}
	models.enqueue(nil, quotaErr)

	g := &Generator{
		models:     models,
		model:      "gemini-pro",
		maxRetries: 3,
		logger:     zap.NewNop(),
		wait:       noWait,
	}

	_, err := g.GenerateContent(context.Background(), "msg")
	if err == nil {
		t.Fatal("expected error when quota delay too long")
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestGeneratorDoesNotRetryClientErrors(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := &Generator{models: models, model: "gemini-pro", maxRetries: 3, logger: zap.NewNop(), wait: noWait}

	if _, err := g.GenerateContent(context.Background(), "msg"); err == nil {
		t.Fatal("expected error")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestGeneratorStopsWhenContextCancelled(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &Generator{
		models:     models,
		model:      "gemini-pro",
		maxRetries: 3,
		logger:     zap.NewNop(),
		wait: func(ctx context.Context, _ time.Duration) error {
			return ctx.Err()
		},
	}

	_, err := g.GenerateContent(ctx, "msg")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestGeneratorRejectsEmptyPrompt(t *testing.T) {
	g := &Generator{models: &fakeModels{}, model: "gemini-pro", maxRetries: 1}

	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty prompt")
	}

	var nilGenerator *Generator
	if _, err := nilGenerator.GenerateContent(context.Background(), "msg"); err == nil {
		t.Fatal("expected error for nil generator")
	}
}

func TestRetryDelay(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		attempt   int
		wantDelay time.Duration
		wantRetry bool
	}{
		{name: "plain error", err: errors.New("boom"), attempt: 1},
		{name: "server error first attempt", err: genai.APIError{Code: 500}, attempt: 1, wantDelay: baseRetryDelay, wantRetry: true},
		{name: "server error backoff", err: genai.APIError{Code: 502}, attempt: 2, wantDelay: 2 * baseRetryDelay, wantRetry: true},
		{name: "backoff capped", err: genai.APIError{Code: 500}, attempt: 10, wantDelay: maxRetryDelay, wantRetry: true},
		{name: "short quota delay", err: genai.APIError{Code: 429, Message: "Please retry in 3s."}, attempt: 1, wantDelay: 3 * time.Second, wantRetry: true},
		{name: "not found", err: genai.APIError{Code: 404}, attempt: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delay, retry := retryDelay(tt.err, tt.attempt)
			if retry != tt.wantRetry || delay != tt.wantDelay {
				t.Fatalf("expected (%v, %t), got (%v, %t)", tt.wantDelay, tt.wantRetry, delay, retry)
			}
		})
	}
}
