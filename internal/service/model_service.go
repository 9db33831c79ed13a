package service

import (
	"context"
	"fmt"
	"sort"

	"chatgen/backend/internal/llm"
)

// ModelService lists the models the generation backend can serve.
type ModelService struct {
	llm llm.LLMProvider
}

func NewModelService(llmProvider llm.LLMProvider) *ModelService {
	return &ModelService{llm: llmProvider}
}

// List returns the locally available models sorted by name. An empty
// installation yields an empty, non-nil list.
func (s *ModelService) List(ctx context.Context) (*llm.ListModelsResponse, error) {
	resp, err := s.llm.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list models: %w", err)
	}
	models := make([]llm.Model, len(resp.Models))
	copy(models, resp.Models)
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return &llm.ListModelsResponse{Models: models}, nil
}
