package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// StreamResponse is one fragment of a streamed reply.
type StreamResponse struct {
	Content string
	Done    bool
}

// LLMProvider defines the interface for interacting with a language model.
type LLMProvider interface {
	// Generate returns a short, non-streamed completion.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	// GenerateStream sends fragments to ch until the reply ends, ctx is
	// cancelled, or the backend fails. ch is always closed on return.
	GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamResponse) error
	ListModels(ctx context.Context) (*ListModelsResponse, error)
	Heartbeat(ctx context.Context) error
}

// Message is a role-tagged history entry. Images are raw bytes.
type Message struct {
	Role    string
	Content string
	Images  [][]byte
}

// Options are sampling options already clamped by the caller. A nil Seed lets
// the backend pick one.
type Options struct {
	NumPredict  int
	Temperature float64
	TopP        float64
	Seed        *int
}

type GenerateRequest struct {
	Model    string
	Messages []Message
	Options  Options
}

type GenerateResponse struct {
	Model    string
	Response string
}

type Model struct {
	Name       string `json:"name"`
	ModifiedAt string `json:"modified_at"`
	Size       int64  `json:"size"`
}

type ListModelsResponse struct {
	Models []Model `json:"models"`
}

type ollamaProvider struct {
	client *api.Client
}

func NewOllamaProvider(baseURL string) (LLMProvider, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}
	return &ollamaProvider{client: api.NewClient(u, &http.Client{})}, nil
}

func (p *ollamaProvider) chatRequest(req *GenerateRequest, stream bool) *api.ChatRequest {
	messages := make([]api.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		msg := api.Message{Role: m.Role, Content: m.Content}
		for _, img := range m.Images {
			msg.Images = append(msg.Images, api.ImageData(img))
		}
		messages = append(messages, msg)
	}

	options := map[string]any{
		"num_predict": req.Options.NumPredict,
		"temperature": req.Options.Temperature,
		"top_p":       req.Options.TopP,
	}
	if req.Options.Seed != nil {
		options["seed"] = *req.Options.Seed
	}

	return &api.ChatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   &stream,
		Options:  options,
	}
}

func (p *ollamaProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	var out strings.Builder
	var modelName string
	err := p.client.Chat(ctx, p.chatRequest(req, false), func(resp api.ChatResponse) error {
		modelName = resp.Model
		out.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	return &GenerateResponse{Model: modelName, Response: out.String()}, nil
}

func (p *ollamaProvider) GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamResponse) error {
	defer close(ch)
	err := p.client.Chat(ctx, p.chatRequest(req, true), func(resp api.ChatResponse) error {
		if resp.Message.Content == "" && !resp.Done {
			return nil
		}
		select {
		case ch <- StreamResponse{Content: resp.Message.Content, Done: resp.Done}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		return fmt.Errorf("chat stream failed: %w", err)
	}
	return nil
}

func (p *ollamaProvider) ListModels(ctx context.Context) (*ListModelsResponse, error) {
	resp, err := p.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list models: %w", err)
	}
	out := &ListModelsResponse{Models: make([]Model, 0, len(resp.Models))}
	for _, m := range resp.Models {
		out.Models = append(out.Models, Model{
			Name:       m.Name,
			ModifiedAt: m.ModifiedAt.String(),
			Size:       m.Size,
		})
	}
	return out, nil
}

func (p *ollamaProvider) Heartbeat(ctx context.Context) error {
	return p.client.Heartbeat(ctx)
}
