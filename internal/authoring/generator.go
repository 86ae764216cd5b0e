package authoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/matchup/internal/llm"
	"github.com/abhisek/matchup/internal/matching"
)

// Generator drafts matching problems.
type Generator interface {
	// Generate returns a draft that passed every configured validator.
	Generate(ctx context.Context, in Input) (*Draft, error)
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate requests drafts until one passes validation. A retryable
// validation failure is fed back into the next prompt; anything else ends
// the loop. The last validation error is returned when attempts run out.
func (g *LLMGenerator) Generate(ctx context.Context, in Input) (*Draft, error) {
	if strings.TrimSpace(in.Topic) == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if in.Pairs < matching.MinItems || in.Pairs > maxPairs {
		return nil, fmt.Errorf("pairs must be between %d and %d, got %d", matching.MinItems, maxPairs, in.Pairs)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeProblemGen)

	attempts := max(g.config.MaxAttempts, 1)
	var rejections []string
	var lastErr error

	for range attempts {
		d, err := g.draft(ctx, in, rejections)
		if err != nil {
			return nil, err
		}

		verr := g.validate(d, in)
		if verr == nil {
			return d, nil
		}
		lastErr = verr
		if !verr.Retryable {
			break
		}
		rejections = append(rejections, verr.Message)
	}

	return nil, lastErr
}

func (g *LLMGenerator) draft(ctx context.Context, in Input, rejections []string) (*Draft, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in, g.config, rejections)},
		},
		Schema:      ProblemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(resp.Content, &d); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	d.trim()
	return &d, nil
}

func (g *LLMGenerator) validate(d *Draft, in Input) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(d, in); verr != nil {
			return verr
		}
	}
	return nil
}

// trim strips surrounding whitespace from every text field.
func (d *Draft) trim() {
	d.Header = strings.TrimSpace(d.Header)
	d.AllSuccessFeedback = strings.TrimSpace(d.AllSuccessFeedback)
	d.PartialSuccessFeedback = strings.TrimSpace(d.PartialSuccessFeedback)
	d.AllErrorFeedback = strings.TrimSpace(d.AllErrorFeedback)
	for i := range d.Pairs {
		p := &d.Pairs[i]
		p.Question = strings.TrimSpace(p.Question)
		p.Answer = strings.TrimSpace(p.Answer)
		p.SuccessFeedback = strings.TrimSpace(p.SuccessFeedback)
		p.ErrorFeedback = strings.TrimSpace(p.ErrorFeedback)
	}
}

