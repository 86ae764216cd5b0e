// Package matching implements the matching exercise: a learner assigns one of
// a shuffled set of answers to each of a fixed list of questions.
//
// A Problem is built once by Normalize and never changes afterwards, so
// Present, IsSubmissionWellFormed and Grade may run concurrently on the same
// Problem without coordination.
package matching

import "github.com/abhisek/matchup/internal/identity"

// MinItems is the smallest number of question/answer pairs a problem may have.
const MinItems = 3

// Item is one question/answer pair.
type Item struct {
	Question        string
	Answer          string
	SuccessFeedback string // shown when the slot is answered correctly
	ErrorFeedback   string // shown when it is not
}

// Problem is a validated, immutable matching problem definition.
type Problem struct {
	id     string
	header string
	items  []Item

	unshuffle  bool
	centralize bool

	allSuccessFeedback     string
	partialSuccessFeedback string
	allErrorFeedback       string

	// slots maps an answer identity to every question index whose answer
	// text produces it.
	slots map[identity.ID][]int
}

func newProblem(id string) *Problem {
	return &Problem{id: id}
}

// index builds the identity lookup once items are final.
func (p *Problem) index() {
	p.slots = make(map[identity.ID][]int, len(p.items))
	for i, it := range p.items {
		aid := identity.Of(it.Answer)
		p.slots[aid] = append(p.slots[aid], i)
	}
}

// ID returns the externally assigned problem id.
func (p *Problem) ID() string { return p.id }

// Header returns the free text shown above the exercise, or "".
func (p *Problem) Header() string { return p.header }

// Len returns the number of items (and therefore submission slots).
func (p *Problem) Len() int { return len(p.items) }

// Items returns a copy of the items in canonical question order.
func (p *Problem) Items() []Item {
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

// Item returns the item at slot i.
func (p *Problem) Item(i int) Item { return p.items[i] }

// Unshuffle reports whether answers are shown in question order.
func (p *Problem) Unshuffle() bool { return p.unshuffle }

// Centralize reports whether grading hides all feedback text.
func (p *Problem) Centralize() bool { return p.centralize }

// AllSuccessFeedback returns the aggregate message for a fully correct submission.
func (p *Problem) AllSuccessFeedback() string { return p.allSuccessFeedback }

// PartialSuccessFeedback returns the aggregate message for a partly correct submission.
func (p *Problem) PartialSuccessFeedback() string { return p.partialSuccessFeedback }

// AllErrorFeedback returns the aggregate message for a submission with every slot wrong.
func (p *Problem) AllErrorFeedback() string { return p.allErrorFeedback }

// AnswerIdentities returns the identity of each item's answer in question
// order. Submitting this sequence grades as fully correct.
func (p *Problem) AnswerIdentities() []identity.ID {
	out := make([]identity.ID, len(p.items))
	for i, it := range p.items {
		out[i] = identity.Of(it.Answer)
	}
	return out
}

// Knows reports whether id is the identity of some item's answer.
func (p *Problem) Knows(id identity.ID) bool {
	_, ok := p.slots[id]
	return ok
}

// Raw returns the canonical authoring form of the problem. Normalizing it
// again yields an equal Problem.
func (p *Problem) Raw() map[string]any {
	raw := map[string]any{}
	if p.header != "" {
		raw[keyHeader] = p.header
	}
	if p.unshuffle {
		raw[keyUnshuffle] = true
	}
	if p.centralize {
		raw[keyCentralize] = true
	}
	putText(raw, keyAllSuccess, p.allSuccessFeedback)
	putText(raw, keyPartialSuccess, p.partialSuccessFeedback)
	putText(raw, keyAllError, p.allErrorFeedback)

	questions := make([]any, len(p.items))
	for i, it := range p.items {
		m := map[string]any{
			keyQuestion: it.Question,
			keyAnswer:   it.Answer,
		}
		putText(m, keySuccess, it.SuccessFeedback)
		putText(m, keyError, it.ErrorFeedback)
		questions[i] = m
	}
	raw[keyQuestions] = questions
	return raw
}

func putText(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}
