package annotator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubGemini(t *testing.T, status int, candidateText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.NotEmpty(t, r.Header.Get("x-goog-api-key"))

		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// The request must declare the structured response schema.
		assert.Contains(t, req, "generationConfig")

		w.WriteHeader(status)
		body := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": candidateText}},
					"role":  "model",
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func TestSuggestTagsAndSummary(t *testing.T) {
	srv := stubGemini(t, http.StatusOK, `{"summary":"s","tags":["a","b"]}`)
	defer srv.Close()

	a := NewGeminiAnnotatorWithBaseURL("test-key", "gemini-1.5-flash", srv.URL)
	result := a.SuggestTagsAndSummary(context.Background(), "note content")

	assert.Equal(t, "s", result.Summary)
	assert.ElementsMatch(t, []string{"a", "b"}, result.Tags)
}

func TestSuggestTagsAndSummaryStripsMarkdownFence(t *testing.T) {
	srv := stubGemini(t, http.StatusOK, "```json\n{\"summary\":\"s\",\"tags\":[\"x\"]}\n```")
	defer srv.Close()

	a := NewGeminiAnnotatorWithBaseURL("test-key", "gemini-1.5-flash", srv.URL)
	result := a.SuggestTagsAndSummary(context.Background(), "note content")

	assert.Equal(t, "s", result.Summary)
	assert.Equal(t, []string{"x"}, result.Tags)
}

func TestSuggestTagsAndSummaryAbsorbsFailures(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		candidateText string
	}{
		{name: "malformed payload", status: http.StatusOK, candidateText: `not json at all`},
		{name: "server error", status: http.StatusInternalServerError, candidateText: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := stubGemini(t, tt.status, tt.candidateText)
			defer srv.Close()

			a := NewGeminiAnnotatorWithBaseURL("test-key", "gemini-1.5-flash", srv.URL)
			result := a.SuggestTagsAndSummary(context.Background(), "note content")

			assert.Equal(t, "", result.Summary)
			assert.Equal(t, []string{}, result.Tags)
		})
	}
}

func TestSuggestTagsAndSummaryUnreachableServer(t *testing.T) {
	srv := stubGemini(t, http.StatusOK, `{}`)
	srv.Close() // already closed on purpose

	a := NewGeminiAnnotatorWithBaseURL("test-key", "gemini-1.5-flash", srv.URL)
	result := a.SuggestTagsAndSummary(context.Background(), "note content")

	assert.Equal(t, Result{Summary: "", Tags: []string{}}, result)
}
