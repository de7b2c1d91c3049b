// Package gemini answers assistant prompts with Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"google.golang.org/genai"
)

const (
	temperature     = 0.7
	maxOutputTokens = 500

	systemPrompt = "You are a disaster preparedness assistant. Give short, practical safety guidance " +
		"for emergencies such as floods, earthquakes, fires, storms and power outages. " +
		"When someone is in immediate danger, tell them to contact local emergency services first."
)

var errEmptyReply = errors.New("gemini returned no text")

// generator is the subset of *genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements domain.ReplyGenerator.
type Client struct {
	models generator
	model  string
	logger *slog.Logger
}

// NewClient creates a Gemini client authenticated with an API key.
func NewClient(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{models: c.Models, model: model, logger: logger}, nil
}

// GenerateReply sends the recent history followed by prompt and returns the
// model's text, trimmed.
func (c *Client) GenerateReply(ctx context.Context, history []domain.ChatMessage, prompt string) (string, error) {
	contents := buildContents(history, prompt)
	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](temperature),
		MaxOutputTokens:   maxOutputTokens,
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	reply := extractText(resp)
	if reply == "" {
		return "", errEmptyReply
	}
	c.logger.Debug("gemini reply generated", "model", c.model, "context_messages", len(history), "chars", len(reply))
	return reply, nil
}

func buildContents(history []domain.ChatMessage, prompt string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := genai.Role(genai.RoleModel)
		if m.IsUser {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return append(contents, genai.NewContentFromText(prompt, genai.RoleUser))
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
