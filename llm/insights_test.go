package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req OpenAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)

		resp := OpenAIResponse{Choices: []Choice{{Message: Message{Role: "assistant", Content: content}}}}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateInsights(t *testing.T) {
	server := completionServer(t, `[
		{"title": "Great job!", "description": "You spent less than last month."},
		{"title": "Tip", "description": "Grow your emergency fund."},
		{"title": "Reminder", "description": "Review your budget at month end."}
	]`)
	defer server.Close()

	client := NewClientWithURL("test-key", server.URL)
	insights, err := client.GenerateInsights([]string{"Monthly income: 50000.00 (Monthly)."})
	require.NoError(t, err)
	require.Len(t, insights, 3)
	assert.Equal(t, "Great job!", insights[0].Title)
	assert.Equal(t, "Grow your emergency fund.", insights[1].Description)
}

func TestGenerateInsightsToleratesCodeFences(t *testing.T) {
	server := completionServer(t, "```json\n[{\"title\":\"Tip\",\"description\":\"Save more.\"}]\n```")
	defer server.Close()

	client := NewClientWithURL("test-key", server.URL)
	insights, err := client.GenerateInsights([]string{"fact"})
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "Tip", insights[0].Title)
}

func TestGenerateInsightsRejectsProse(t *testing.T) {
	server := completionServer(t, "Here are some thoughts about your finances.")
	defer server.Close()

	client := NewClientWithURL("test-key", server.URL)
	_, err := client.GenerateInsights([]string{"fact"})
	assert.Error(t, err)
}

func TestGenerateInsightsRejectsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithURL("test-key", server.URL)
	_, err := client.GenerateInsights([]string{"fact"})
	assert.Error(t, err)
}

func TestParseInsightsEmptyArray(t *testing.T) {
	_, err := parseInsights("[]")
	assert.Error(t, err)
}
