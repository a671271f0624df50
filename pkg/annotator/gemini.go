package annotator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"notesync-be/internal/constant"
)

// Result is the constrained annotation payload: a short summary plus a
// tag set. A zero Result ("no new information") is the valid outcome for
// every failure path.
type Result struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// Annotator derives tags and a summary from note content.
type Annotator interface {
	SuggestTagsAndSummary(ctx context.Context, content string) Result
}

type geminiParts struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []*geminiParts `json:"parts"`
	Role  string         `json:"role"`
}

type geminiSchemaItems struct {
	Type string `json:"type"`
}

type geminiSchemaProperty struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *geminiSchemaItems `json:"items,omitempty"`
}

type geminiResponseSchema struct {
	Type       string                          `json:"type"`
	Properties map[string]geminiSchemaProperty `json:"properties"`
	Required   []string                        `json:"required"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string               `json:"response_mime_type"`
	ResponseSchema   geminiResponseSchema `json:"response_schema"`
}

type geminiRequest struct {
	Contents         []*geminiContent       `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// GeminiAnnotator calls the generative-language REST API once per
// request. No retry, no rate limiting; the only resilience measure is the
// client timeout so a hung call cannot pin the caller forever.
type GeminiAnnotator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiAnnotator(apiKey, model string) *GeminiAnnotator {
	return &GeminiAnnotator{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// NewGeminiAnnotatorWithBaseURL exists for tests pointing at a stub server.
func NewGeminiAnnotatorWithBaseURL(apiKey, model, baseURL string) *GeminiAnnotator {
	a := NewGeminiAnnotator(apiKey, model)
	a.baseURL = baseURL
	return a
}

// SuggestTagsAndSummary issues one external request and parses the
// declared structure. Every failure degrades to an empty Result; callers
// never see an error from this path.
func (a *GeminiAnnotator) SuggestTagsAndSummary(ctx context.Context, content string) Result {
	result, err := a.call(ctx, content)
	if err != nil {
		log.Printf("[WARN] Annotation call failed, returning empty result: %v", err)
		return Result{Summary: "", Tags: []string{}}
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}
	return result
}

func (a *GeminiAnnotator) call(ctx context.Context, content string) (Result, error) {
	payload := geminiRequest{
		Contents: []*geminiContent{
			{
				Parts: []*geminiParts{{Text: constant.AnnotationPromptV1 + content}},
				Role:  "user",
			},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: geminiResponseSchema{
				Type: "OBJECT",
				Properties: map[string]geminiSchemaProperty{
					"summary": {Type: "STRING", Description: "Short summary"},
					"tags": {
						Type:        "ARRAY",
						Items:       &geminiSchemaItems{Type: "STRING"},
						Description: "Keyword tags",
					},
				},
				Required: []string{"summary", "tags"},
			},
		},
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return Result{}, err
	}

	req.Header.Set("x-goog-api-key", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return Result{}, err
	}

	if res.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return Result{}, err
	}
	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return Result{}, fmt.Errorf("empty candidates in response")
	}

	// Some models still wrap structured output in a markdown fence.
	responseBytes := []byte(geminiRes.Candidates[0].Content.Parts[0].Text)
	responseBytes = bytes.TrimSpace(responseBytes)
	responseBytes = bytes.TrimPrefix(responseBytes, []byte("```json"))
	responseBytes = bytes.TrimPrefix(responseBytes, []byte("```"))
	responseBytes = bytes.TrimSuffix(responseBytes, []byte("```"))
	responseBytes = bytes.TrimSpace(responseBytes)

	var result Result
	if err := json.Unmarshal(responseBytes, &result); err != nil {
		return Result{}, fmt.Errorf("parse error: %w | raw: %s", err, string(responseBytes))
	}

	return result, nil
}
