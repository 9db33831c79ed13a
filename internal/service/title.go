package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatgen/backend/internal/llm"
	"chatgen/backend/internal/model"
)

const (
	titleInputLimit = 200
	titleNumPredict = 10
	titleTimeout    = 30 * time.Second
	titleSystem     = "You are an expert at creating short, concise titles for conversations. Respond with only the title, and nothing else."
)

// generateTitle asks the support model for a title. An empty string means the
// model produced nothing usable.
func (s *GenerationService) generateTitle(ctx context.Context, modelName, userText, assistantText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, titleTimeout)
	defer cancel()

	req := &llm.GenerateRequest{
		Model: modelName,
		Messages: []llm.Message{
			{Role: model.RoleSystem, Content: titleSystem},
			{
				Role: model.RoleUser,
				Content: fmt.Sprintf("Based on the following conversation, what would be a good title?\n\n---\nUser: %s\n\nAssistant: %s\n---",
					titleInput(userText), titleInput(assistantText)),
			},
		},
		Options: resolveOptions(nil, nil),
	}
	req.Options.NumPredict = titleNumPredict

	resp, err := s.llm.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("title request failed: %w", err)
	}
	return cleanTitle(resp.Response), nil
}

func titleInput(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return truncate(s, titleInputLimit)
}

func cleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, "\"'")
	return strings.TrimSpace(title)
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
