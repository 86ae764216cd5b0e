package matching

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(q, a string) map[string]any {
	return map[string]any{"question": q, "answer": a}
}

func capitalsRaw() map[string]any {
	return map[string]any{
		"header": "Match each country with its capital.",
		"questions": map[string]any{
			"2":  item("Italy", "Rome"),
			"0":  item("France", "Paris"),
			"10": item("Spain", "Madrid"),
			"1":  item("Germany", "Berlin"),
		},
		"all_success_feedback": "Great!",
	}
}

func requireRule(t *testing.T, err error, rule Rule) *DefinitionError {
	t.Helper()
	require.Error(t, err)
	var derr *DefinitionError
	require.True(t, errors.As(err, &derr), "expected *DefinitionError, got %T", err)
	assert.Equal(t, rule, derr.Rule)
	return derr
}

func TestNormalize_SortsKeyedItemsNumerically(t *testing.T) {
	p, err := Normalize("capitals", capitalsRaw())
	require.NoError(t, err)

	var questions []string
	for _, it := range p.Items() {
		questions = append(questions, it.Question)
	}
	assert.Equal(t, []string{"France", "Germany", "Italy", "Spain"}, questions)
	assert.Equal(t, "capitals", p.ID())
	assert.Equal(t, "Match each country with its capital.", p.Header())
	assert.Equal(t, "Great!", p.AllSuccessFeedback())
}

func TestNormalize_ListKeepsOrder(t *testing.T) {
	p, err := Normalize("p", map[string]any{
		"questions": []any{item("c", "3"), item("a", "1"), item("b", "2")},
	})
	require.NoError(t, err)
	assert.Equal(t, "c", p.Item(0).Question)
	assert.Equal(t, "b", p.Item(2).Question)
}

func TestNormalize_MissingQuestions(t *testing.T) {
	_, err := Normalize("p1", map[string]any{"header": "x"})
	derr := requireRule(t, err, RuleMissingItems)
	assert.Equal(t, "p1", derr.ProblemID)
	assert.Contains(t, err.Error(), "p1")
}

func TestNormalize_TooFewItems(t *testing.T) {
	tests := []struct {
		name  string
		items []any
	}{
		{"none", []any{}},
		{"one", []any{item("a", "1")}},
		{"two", []any{item("a", "1"), item("b", "2")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize("p", map[string]any{"questions": tt.items})
			requireRule(t, err, RuleTooFewItems)
		})
	}
}

func TestNormalize_DuplicateQuestion(t *testing.T) {
	_, err := Normalize("p", map[string]any{
		"questions": []any{item("a", "1"), item("b", "2"), item("a", "3"), item("d", "4")},
	})
	requireRule(t, err, RuleDuplicateQuestion)
}

func TestNormalize_DuplicateQuestionWithFewItems(t *testing.T) {
	_, err := Normalize("p", map[string]any{
		"questions": []any{item("a", "1"), item("a", "2")},
	})
	require.Error(t, err)
	requireRule(t, err, RuleDuplicateQuestion)
}

func TestNormalize_DuplicateAnswersAllowed(t *testing.T) {
	p, err := Normalize("p", map[string]any{
		"questions": []any{item("a", "X"), item("b", "X"), item("c", "Y")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
}

func TestNormalize_BlankRequiredField(t *testing.T) {
	_, err := Normalize("p", map[string]any{
		"questions": []any{item("a", "1"), item("  ", "2"), item("c", "3")},
	})
	requireRule(t, err, RuleMissingField)

	_, err = Normalize("p", map[string]any{
		"questions": []any{item("a", "1"), map[string]any{"question": "b"}, item("c", "3")},
	})
	requireRule(t, err, RuleMissingField)
}

func TestNormalize_BlankOptionalTextRemoved(t *testing.T) {
	raw := map[string]any{
		"questions": []any{
			map[string]any{"question": "a", "answer": "1", "success_feedback": "  ", "error_feedback": "\t"},
			item("b", "2"),
			item("c", "3"),
		},
		"all_success_feedback":     " ",
		"partial_success_feedback": "",
		"all_error_feedback":       "\n",
	}
	p, err := Normalize("p", raw)
	require.NoError(t, err)
	assert.Empty(t, p.Item(0).SuccessFeedback)
	assert.Empty(t, p.Item(0).ErrorFeedback)
	assert.Empty(t, p.AllSuccessFeedback())
	assert.Empty(t, p.PartialSuccessFeedback())
	assert.Empty(t, p.AllErrorFeedback())

	canonical := p.Raw()
	assert.NotContains(t, canonical, "all_success_feedback")
	first := canonical["questions"].([]any)[0].(map[string]any)
	assert.NotContains(t, first, "success_feedback")
}

func TestNormalize_FlagsByPresence(t *testing.T) {
	for _, v := range []any{true, false, nil, "", "no", 0} {
		raw := map[string]any{
			"questions":  []any{item("a", "1"), item("b", "2"), item("c", "3")},
			"unshuffle":  v,
			"centralize": v,
		}
		p, err := Normalize("p", raw)
		require.NoError(t, err)
		assert.True(t, p.Unshuffle(), "unshuffle with value %#v", v)
		assert.True(t, p.Centralize(), "centralize with value %#v", v)
	}

	p, err := Normalize("p", map[string]any{
		"questions": []any{item("a", "1"), item("b", "2"), item("c", "3")},
	})
	require.NoError(t, err)
	assert.False(t, p.Unshuffle())
	assert.False(t, p.Centralize())
}

func TestNormalize_NonIntegerKey(t *testing.T) {
	_, err := Normalize("p", map[string]any{
		"questions": map[string]any{"0": item("a", "1"), "one": item("b", "2"), "2": item("c", "3")},
	})
	requireRule(t, err, RuleMalformed)
}

func TestNormalize_WrongFieldTypes(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"questions scalar", map[string]any{"questions": "nope"}},
		{"answer not string", map[string]any{"questions": []any{item("a", "1"), map[string]any{"question": "b", "answer": 2}, item("c", "3")}}},
		{"header not string", map[string]any{"header": 3, "questions": []any{item("a", "1"), item("b", "2"), item("c", "3")}}},
		{"item not object", map[string]any{"questions": []any{"a", "b", "c"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize("p", tt.raw)
			requireRule(t, err, RuleMalformed)
		})
	}
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	raw := capitalsRaw()
	raw["unshuffle"] = "yes"
	_, err := Normalize("capitals", raw)
	require.NoError(t, err)
	assert.Equal(t, "yes", raw["unshuffle"])
	assert.IsType(t, map[string]any{}, raw["questions"])
}

func TestNormalize_Idempotent(t *testing.T) {
	raws := []map[string]any{
		capitalsRaw(),
		{
			"questions": map[string]any{
				"3": map[string]any{"question": "d", "answer": "X", "success_feedback": "yes", "error_feedback": " "},
				"1": item("b", "X"),
				"2": item("c", "Y"),
			},
			"unshuffle":                nil,
			"centralize":               false,
			"partial_success_feedback": "Almost",
		},
	}
	for _, raw := range raws {
		p1, err := Normalize("p", raw)
		require.NoError(t, err)
		p2, err := Normalize("p", p1.Raw())
		require.NoError(t, err)
		assert.Equal(t, p1, p2)
		assert.Equal(t, p1.Raw(), p2.Raw())
	}
}

func TestProblem_ItemsReturnsCopy(t *testing.T) {
	p, err := Normalize("capitals", capitalsRaw())
	require.NoError(t, err)

	items := p.Items()
	items[0].Answer = "Lyon"
	assert.Equal(t, "Paris", p.Item(0).Answer)
}
