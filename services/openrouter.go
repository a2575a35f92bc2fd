package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// Free-tier models on OpenRouter, tried in order. Quality and availability on
// the free tier fluctuate, so a failed call escalates to the next candidate.
var defaultModels = []string{
	"google/gemma-2b-it:free",
	"microsoft/phi-3-mini-4k-instruct:free",
	"huggingfaceh4/zephyr-7b-beta:free",
	"mistralai/mistral-7b-instruct:free",
	"meta-llama/llama-3-8b-instruct:free",
}

var (
	ErrNotConfigured   = errors.New("OPENROUTER_API_KEY is not configured")
	ErrModelsExhausted = errors.New("all candidate models failed")
)

type AIClient struct {
	apiKey     string
	baseURL    string
	models     []string
	referer    string
	httpClient *http.Client
}

var aiClient *AIClient

func InitAI() {
	models := defaultModels
	if raw := os.Getenv("OPENROUTER_MODELS"); raw != "" {
		models = nil
		for _, m := range strings.Split(raw, ",") {
			m = strings.TrimSpace(m)
			if m != "" {
				models = append(models, m)
			}
		}
	}

	referer := os.Getenv("FRONTEND_URL")
	if i := strings.Index(referer, ","); i >= 0 {
		referer = strings.TrimSpace(referer[:i])
	}
	if referer == "" {
		referer = "http://localhost:3000"
	}

	aiClient = NewAIClient(os.Getenv("OPENROUTER_API_KEY"), openRouterURL, models)
	aiClient.referer = referer

	if aiClient.apiKey != "" {
		log.Printf("✅ AI (OpenRouter) initialized with %d candidate models", len(models))
	} else {
		log.Println("⚠️  OPENROUTER_API_KEY not set — trip enrichment will fail until it is configured")
	}
}

func NewAIClient(apiKey, baseURL string, models []string) *AIClient {
	return &AIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		models:  models,
		referer: "http://localhost:3000",
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // per-attempt bound; a timeout escalates like any other failure
		},
	}
}

func GetAIClient() *AIClient {
	return aiClient
}

func (c *AIClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Invoke sends the same prompt to each candidate model in order until one
// returns usable text. A non-2xx status, a transport error, or an empty
// completion all escalate to the next model; each model gets exactly one
// attempt. When the list is exhausted it returns ErrModelsExhausted, and the
// caller decides what to do about it.
func (c *AIClient) Invoke(ctx context.Context, system, user string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	var lastErr error
	for attempt, model := range c.models {
		log.Printf("🔹 Calling OpenRouter with model %s (attempt %d/%d)", model, attempt+1, len(c.models))

		text, err := c.callModel(ctx, model, system, user)
		if err != nil {
			log.Printf("⚠️  Model %s failed: %v — escalating", model, err)
			lastErr = err
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("%w (last error: %v)", ErrModelsExhausted, lastErr)
}

func (c *AIClient) callModel(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.7,
		MaxTokens:      4000,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", "TripScout")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API error (%d): %s", resp.StatusCode, truncateForLog(string(body)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %v", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion from model")
	}
	return content, nil
}

func truncateForLog(s string) string {
	if len(s) > 300 {
		return s[:300] + "..."
	}
	return s
}
