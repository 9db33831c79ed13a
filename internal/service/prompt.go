package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"chatgen/backend/internal/llm"
	"chatgen/backend/internal/model"
)

const baseSystemPrompt = "You are a helpful assistant."

// buildSystemPrompt appends one labeled clause per non-empty preference.
func buildSystemPrompt(prefs *model.UserPreferences) string {
	var b strings.Builder
	b.WriteString(baseSystemPrompt)
	if prefs == nil {
		return b.String()
	}

	clauses := []struct{ label, value string }{
		{"Custom instructions from the user", prefs.CustomInstructions},
		{"The user's nickname", prefs.Nickname},
		{"The user's occupation", prefs.Occupation},
		{"About the user", prefs.About},
	}
	for _, c := range clauses {
		value := strings.TrimSpace(c.value)
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "\n\n%s: %s", c.label, value)
	}
	return b.String()
}

// buildHistory converts stored messages into the model's history, stopping at
// stopAtID. It reports false if stopAtID is not among the messages.
func buildHistory(prefs *model.UserPreferences, messages []model.Message, stopAtID string) ([]llm.Message, bool) {
	history := make([]llm.Message, 0, len(messages)+1)
	history = append(history, llm.Message{Role: model.RoleSystem, Content: buildSystemPrompt(prefs)})

	for _, m := range messages {
		if m.ID == stopAtID {
			return history, true
		}
		if m.Role == model.RoleAssistant {
			history = append(history, llm.Message{Role: m.Role, Content: m.Content})
			continue
		}
		history = append(history, userTurn(m))
	}
	return history, false
}

func userTurn(m model.Message) llm.Message {
	out := llm.Message{Role: model.RoleUser}
	var b strings.Builder
	b.WriteString(m.Content)
	for _, f := range m.Files {
		if f.IsImage() {
			out.Images = append(out.Images, f.Data)
			continue
		}
		if !utf8.Valid(f.Data) {
			continue
		}
		fmt.Fprintf(&b, "\n\n[File: %s]\n%s\n[End of file: %s]", f.Name, string(f.Data), f.Name)
	}
	out.Content = b.String()
	return out
}
