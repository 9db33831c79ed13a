package service

import (
	"math/rand/v2"
	"sync"

	"chatgen/backend/internal/llm"
	"chatgen/backend/internal/model"
)

const (
	defaultNumPredict  = 256
	minNumPredict      = 32
	maxNumPredict      = 4096
	defaultTemperature = 0.2
	defaultTopP        = 0.9
	minSampling        = 0.01
	maxSampling        = 10
)

func clamp[T int | float64](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// resolveOptions applies defaults and bounds. The seed is resolved separately.
func resolveOptions(opts *model.GenerationOptions, seed *int) llm.Options {
	out := llm.Options{
		NumPredict:  defaultNumPredict,
		Temperature: defaultTemperature,
		TopP:        defaultTopP,
		Seed:        seed,
	}
	if opts == nil {
		return out
	}
	if opts.NumPredict != nil {
		out.NumPredict = clamp(*opts.NumPredict, minNumPredict, maxNumPredict)
	}
	if opts.Temperature != nil {
		out.Temperature = clamp(*opts.Temperature, minSampling, maxSampling)
	}
	if opts.TopP != nil {
		out.TopP = clamp(*opts.TopP, minSampling, maxSampling)
	}
	return out
}

// seedSource picks the seed for a generation: an explicit seed wins, then the
// per-chat counter in test mode, then a random seed when asked for one. A nil
// result lets the backend choose.
type seedSource struct {
	testMode bool

	mu       sync.Mutex
	counters map[string]int
}

func newSeedSource(testMode bool) *seedSource {
	return &seedSource{testMode: testMode, counters: make(map[string]int)}
}

func (s *seedSource) next(chatID string, opts *model.GenerationOptions, randomize bool) *int {
	if opts != nil && opts.Seed != nil {
		seed := *opts.Seed
		return &seed
	}
	if s.testMode {
		s.mu.Lock()
		seed := s.counters[chatID]
		s.counters[chatID] = seed + 1
		s.mu.Unlock()
		return &seed
	}
	if randomize {
		seed := rand.IntN(1 << 31)
		return &seed
	}
	return nil
}

// forget drops the test-mode counter of a deleted chat.
func (s *seedSource) forget(chatID string) {
	s.mu.Lock()
	delete(s.counters, chatID)
	s.mu.Unlock()
}
