package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

type OpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Choice struct {
	Message Message `json:"message"`
}

type OpenAIResponse struct {
	Choices []Choice `json:"choices"`
}

// Insight is one generated observation about the user's finances.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Client calls the OpenAI chat-completions API.
type Client struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		url:        defaultOpenAIURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithURL points the client at a different endpoint, used by tests.
func NewClientWithURL(apiKey, url string) *Client {
	c := NewClient(apiKey)
	c.url = url
	return c
}

const systemPrompt = "You are a personal-finance assistant. Given facts about a user's " +
	"finances, return a JSON array of 3 to 4 insights, each an object with " +
	"\"title\" and \"description\". Titles are short and encouraging; descriptions " +
	"are one concrete, actionable sentence. Return only the JSON array."

// GenerateInsights turns plain-language facts about the user's financial
// state into a short list of insights.
func (c *Client) GenerateInsights(facts []string) ([]Insight, error) {
	reqBody := OpenAIRequest{
		Model:       "gpt-3.5-turbo",
		MaxTokens:   400,
		Temperature: 0.7,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Facts about the user:\n" + strings.Join(facts, "\n")},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from OpenAI: %d", resp.StatusCode)
	}

	var openaiResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return nil, err
	}
	if len(openaiResp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion from OpenAI")
	}

	return parseInsights(openaiResp.Choices[0].Message.Content)
}

// parseInsights extracts the JSON array from the completion, tolerating
// models that wrap it in code fences or prose.
func parseInsights(content string) ([]Insight, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in completion")
	}

	var insights []Insight
	if err := json.Unmarshal([]byte(content[start:end+1]), &insights); err != nil {
		return nil, fmt.Errorf("malformed insights JSON: %w", err)
	}
	if len(insights) == 0 {
		return nil, fmt.Errorf("no insights in completion")
	}
	return insights, nil
}
