package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func pairSchema() *Schema {
	return &Schema{
		Name:        "test-pairs",
		Description: "Question/answer pairs",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"header": map[string]any{"type": "string"},
				"pairs": map[string]any{
					"type":     "array",
					"minItems": 3,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string", "minLength": 1},
							"answer":   map[string]any{"type": "string", "minLength": 1},
						},
						"required": []any{"question", "answer"},
					},
				},
				"tone": map[string]any{"type": "string", "enum": []any{"formal", "casual"}},
			},
			"required": []any{"pairs"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	const three = `[{"question":"a","answer":"1"},{"question":"b","answer":"2"},{"question":"c","answer":"3"}]`

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"header":"h","pairs":` + three + `}`, false},
		{"valid without optional", `{"pairs":` + three + `}`, false},
		{"missing required", `{"header":"h"}`, true},
		{"too few pairs", `{"pairs":[{"question":"a","answer":"1"}]}`, true},
		{"empty answer", `{"pairs":[{"question":"a","answer":""},{"question":"b","answer":"2"},{"question":"c","answer":"3"}]}`, true},
		{"wrong type", `{"pairs":"none"}`, true},
		{"invalid enum", `{"pairs":` + three + `,"tone":"rude"}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(pairSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
				if string(invErr.Content) != tt.raw {
					t.Errorf("error content = %q, want %q", invErr.Content, tt.raw)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_BadSchema(t *testing.T) {
	schema := &Schema{
		Name:       "test-broken",
		Definition: map[string]any{"type": 42},
	}
	err := validateResponse(schema, json.RawMessage(`{}`))
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse for an uncompilable schema, got: %v", err)
	}
}
