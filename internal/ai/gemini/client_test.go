package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModels struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	idx := f.calls
	f.calls++
	var resp *genai.GenerateContentResponse
	if idx < len(f.responses) {
		resp = f.responses[idx]
	}
	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	return resp, err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}

func newTestGenerator(models contentCaller, maxRetries int) *Generator {
	return &Generator{
		models:     models,
		modelName:  defaultModel,
		maxRetries: maxRetries,
		logger:     zap.NewNop(),
	}
}

func stubWait(t *testing.T) {
	t.Helper()
	orig := wait
	wait = func(context.Context, time.Duration) error { return nil }
	t.Cleanup(func() { wait = orig })
}

func TestGenerateContentReturnsFirstText(t *testing.T) {
	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("  hello  ")}}
	gen := newTestGenerator(models, 1)

	got, err := gen.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("unexpected response: %q", got)
	}
}

func TestGenerateContentRetriesOnTransientErrors(t *testing.T) {
	stubWait(t)

	models := &fakeModels{
		responses: []*genai.GenerateContentResponse{nil, textResponse("ok")},
		errs:      []error{genai.APIError{Code: 429, Message: "rate limited"}, nil},
	}
	gen := newTestGenerator(models, 3)

	got, err := gen.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Fatalf("unexpected response: %q", got)
	}
	if models.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", models.calls)
	}
}

func TestGenerateContentStopsOnPermanentError(t *testing.T) {
	models := &fakeModels{errs: []error{genai.APIError{Code: 400, Message: "bad request"}}}
	gen := newTestGenerator(models, 3)

	if _, err := gen.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error")
	}
	if models.calls != 1 {
		t.Fatalf("expected a single call, got %d", models.calls)
	}
}

func TestGenerateContentExhaustsRetries(t *testing.T) {
	stubWait(t)

	transient := genai.APIError{Code: 503, Message: "unavailable"}
	models := &fakeModels{errs: []error{transient, transient, transient}}
	gen := newTestGenerator(models, 3)

	if _, err := gen.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if models.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", models.calls)
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	gen := newTestGenerator(&fakeModels{}, 1)

	if _, err := gen.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for an empty prompt")
	}
}

func TestGenerateContentRejectsEmptyResponse(t *testing.T) {
	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("  ")}}
	gen := newTestGenerator(models, 1)

	if _, err := gen.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error for an empty response")
	}
}

func TestRetryable(t *testing.T) {
	if retryable(errors.New("plain")) {
		t.Fatal("plain errors must not be retryable")
	}
	if !retryable(genai.APIError{Code: 429}) {
		t.Fatal("429 must be retryable")
	}
	if !retryable(genai.APIError{Code: 500}) {
		t.Fatal("500 must be retryable")
	}
	if retryable(genai.APIError{Code: 404}) {
		t.Fatal("404 must not be retryable")
	}
}
