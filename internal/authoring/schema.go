package authoring

import (
	"github.com/abhisek/matchup/internal/llm"
	"github.com/abhisek/matchup/internal/matching"
)

// maxPairs bounds the pair count a single request may ask for.
const maxPairs = 20

func text(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// ProblemSchema defines the JSON the LLM returns for a drafted problem.
// Every property is required for strict structured output; optional text
// is returned as an empty string.
var ProblemSchema = &llm.Schema{
	Name:        "matching-problem",
	Description: "A matching exercise: questions, one answer each, and feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"header": text("Short instruction shown above the exercise"),
			"pairs": map[string]any{
				"type":     "array",
				"minItems": matching.MinItems,
				"maxItems": maxPairs,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":         map[string]any{"type": "string", "minLength": 1, "description": "Prompt the learner matches an answer to; unique within the problem"},
						"answer":           map[string]any{"type": "string", "minLength": 1, "description": "The correct answer for this question"},
						"success_feedback": text("Shown when this question is matched correctly, or empty"),
						"error_feedback":   text("Shown when this question is matched wrongly, or empty"),
					},
					"required":             []any{"question", "answer", "success_feedback", "error_feedback"},
					"additionalProperties": false,
				},
			},
			"all_success_feedback":     text("Shown when every question is matched correctly"),
			"partial_success_feedback": text("Shown when some but not all questions are matched correctly"),
			"all_error_feedback":       text("Shown when no question is matched correctly"),
		},
		"required":             []any{"header", "pairs", "all_success_feedback", "partial_success_feedback", "all_error_feedback"},
		"additionalProperties": false,
	},
}
