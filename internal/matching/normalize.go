package matching

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Authoring content keys.
const (
	keyHeader         = "header"
	keyQuestions      = "questions"
	keyUnshuffle      = "unshuffle"
	keyCentralize     = "centralize"
	keyAllSuccess     = "all_success_feedback"
	keyPartialSuccess = "partial_success_feedback"
	keyAllError       = "all_error_feedback"

	keyQuestion = "question"
	keyAnswer   = "answer"
	keySuccess  = "success_feedback"
	keyError    = "error_feedback"
)

// contentSchema describes the shape of raw authoring content. Semantic rules
// (item count, duplicate questions, required fields) are checked afterwards
// so they can be reported with their own Rule.
var contentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		keyHeader:         map[string]any{"type": "string"},
		keyAllSuccess:     map[string]any{"type": "string"},
		keyPartialSuccess: map[string]any{"type": "string"},
		keyAllError:       map[string]any{"type": "string"},
		keyQuestions: map[string]any{
			"oneOf": []any{
				map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"$ref": "#/$defs/item"},
				},
				map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/item"},
				},
			},
		},
	},
	"$defs": map[string]any{
		"item": map[string]any{
			"type": "object",
			"properties": map[string]any{
				keyQuestion: map[string]any{"type": "string"},
				keyAnswer:   map[string]any{"type": "string"},
				keySuccess:  map[string]any{"type": "string"},
				keyError:    map[string]any{"type": "string"},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func contentValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		const url = "schema://matching-content.json"
		if err := c.AddResource(url, contentSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// Normalize validates raw authoring content and builds the Problem it
// describes. raw is the loosely typed structure an editor or task file
// produces; it is not modified.
//
// Normalization:
//   - a questions map keyed by integer strings is ordered by ascending key;
//     a questions list keeps its order
//   - optional text fields holding only whitespace are treated as absent
//   - unshuffle and centralize are true when their key is present, whatever
//     the value
//
// Any violation is returned as a *DefinitionError.
func Normalize(id string, raw map[string]any) (*Problem, error) {
	content, err := plainJSON(raw)
	if err != nil {
		return nil, &DefinitionError{ProblemID: id, Rule: RuleMalformed, Detail: "content is not JSON compatible", Err: err}
	}

	v, err := contentValidator()
	if err != nil {
		return nil, fmt.Errorf("compile content schema: %w", err)
	}
	if err := v.Validate(content); err != nil {
		return nil, &DefinitionError{ProblemID: id, Rule: RuleMalformed, Detail: "content does not match the matching schema", Err: err}
	}

	m := content.(map[string]any)
	rawQuestions, ok := m[keyQuestions]
	if !ok {
		return nil, &DefinitionError{ProblemID: id, Rule: RuleMissingItems, Detail: "a questions field is required"}
	}

	entries, err := orderedItems(rawQuestions)
	if err != nil {
		return nil, &DefinitionError{ProblemID: id, Rule: RuleMalformed, Detail: err.Error(), Err: err}
	}

	p := newProblem(id)
	p.header, _ = m[keyHeader].(string)
	_, p.unshuffle = m[keyUnshuffle]
	_, p.centralize = m[keyCentralize]
	p.allSuccessFeedback = text(m, keyAllSuccess)
	p.partialSuccessFeedback = text(m, keyPartialSuccess)
	p.allErrorFeedback = text(m, keyAllError)

	p.items = make([]Item, 0, len(entries))
	for i, e := range entries {
		it := Item{
			Question:        text(e, keyQuestion),
			Answer:          text(e, keyAnswer),
			SuccessFeedback: text(e, keySuccess),
			ErrorFeedback:   text(e, keyError),
		}
		if it.Question == "" {
			return nil, &DefinitionError{ProblemID: id, Rule: RuleMissingField, Detail: fmt.Sprintf("item %d has no question", i+1)}
		}
		if it.Answer == "" {
			return nil, &DefinitionError{ProblemID: id, Rule: RuleMissingField, Detail: fmt.Sprintf("item %d has no answer", i+1)}
		}
		p.items = append(p.items, it)
	}

	seen := make(map[string]int, len(p.items))
	for i, it := range p.items {
		if j, dup := seen[it.Question]; dup {
			return nil, &DefinitionError{
				ProblemID: id,
				Rule:      RuleDuplicateQuestion,
				Detail:    fmt.Sprintf("items %d and %d share the question %q; all questions must be different", j+1, i+1, it.Question),
			}
		}
		seen[it.Question] = i
	}

	if len(p.items) < MinItems {
		return nil, &DefinitionError{
			ProblemID: id,
			Rule:      RuleTooFewItems,
			Detail:    fmt.Sprintf("at least %d questions are required, got %d", MinItems, len(p.items)),
		}
	}

	p.index()
	return p, nil
}

// orderedItems returns the item maps in authoring order.
func orderedItems(v any) ([]map[string]any, error) {
	switch q := v.(type) {
	case []any:
		out := make([]map[string]any, len(q))
		for i, e := range q {
			out[i] = e.(map[string]any)
		}
		return out, nil
	case map[string]any:
		type keyed struct {
			n   int
			key string
			val map[string]any
		}
		ks := make([]keyed, 0, len(q))
		for k, e := range q {
			n, err := strconv.Atoi(strings.TrimSpace(k))
			if err != nil {
				return nil, fmt.Errorf("question key %q is not an integer", k)
			}
			ks = append(ks, keyed{n: n, key: k, val: e.(map[string]any)})
		}
		sort.Slice(ks, func(i, j int) bool {
			if ks[i].n != ks[j].n {
				return ks[i].n < ks[j].n
			}
			return ks[i].key < ks[j].key
		})
		out := make([]map[string]any, len(ks))
		for i, k := range ks {
			out[i] = k.val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("questions must be a list or a map, got %T", v)
	}
}

// text returns m[key] or "" when it is absent or only whitespace.
func text(m map[string]any, key string) string {
	s, _ := m[key].(string)
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// plainJSON round-trips v through encoding/json so the schema validator only
// sees JSON value types.
func plainJSON(v map[string]any) (any, error) {
	if v == nil {
		v = map[string]any{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
