// Package authoring drafts matching problems with an LLM and checks them
// with the same rules the engine applies when a problem is published.
package authoring

import "github.com/abhisek/matchup/internal/matching"

// Input describes the problem an author wants drafted.
type Input struct {
	// Topic is a free-text description, e.g. "capitals of Europe".
	Topic string

	// Pairs is the number of question/answer pairs wanted.
	Pairs int

	// Language is the language the problem is written in. Empty means
	// English.
	Language string

	// Avoid lists question texts the draft must not reuse, typically the
	// questions of problems already in the task.
	Avoid []string
}

// Pair is one drafted question/answer pair with optional feedback.
type Pair struct {
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	SuccessFeedback string `json:"success_feedback"`
	ErrorFeedback   string `json:"error_feedback"`
}

// Draft is a generated problem before it is given an id and published.
type Draft struct {
	Header                 string `json:"header"`
	Pairs                  []Pair `json:"pairs"`
	AllSuccessFeedback     string `json:"all_success_feedback"`
	PartialSuccessFeedback string `json:"partial_success_feedback"`
	AllErrorFeedback       string `json:"all_error_feedback"`
}

// Raw returns the draft as matching authoring content, suitable for a task
// file or for matching.Normalize. Empty optional text is left out.
func (d *Draft) Raw() map[string]any {
	questions := make([]any, len(d.Pairs))
	for i, p := range d.Pairs {
		item := map[string]any{
			"question": p.Question,
			"answer":   p.Answer,
		}
		putNonEmpty(item, "success_feedback", p.SuccessFeedback)
		putNonEmpty(item, "error_feedback", p.ErrorFeedback)
		questions[i] = item
	}

	raw := map[string]any{"questions": questions}
	putNonEmpty(raw, "header", d.Header)
	putNonEmpty(raw, "all_success_feedback", d.AllSuccessFeedback)
	putNonEmpty(raw, "partial_success_feedback", d.PartialSuccessFeedback)
	putNonEmpty(raw, "all_error_feedback", d.AllErrorFeedback)
	return raw
}

// Problem normalizes the draft under the given problem id.
func (d *Draft) Problem(id string) (*matching.Problem, error) {
	return matching.Normalize(id, d.Raw())
}

func putNonEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
