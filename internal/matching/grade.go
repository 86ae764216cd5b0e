package matching

import (
	"fmt"
	"slices"

	"github.com/abhisek/matchup/internal/identity"
)

// Submission maps a problem id to the identities the learner assigned to its
// slots, in question order. Hosts may carry several problems in one map.
type Submission map[string][]string

// Outcome classifies a graded submission by its number of wrong slots.
type Outcome string

const (
	OutcomeAllCorrect Outcome = "all-correct"
	OutcomePartial    Outcome = "partial"
	OutcomeAllWrong   Outcome = "all-wrong"
)

// Result is the outcome of grading one submission.
type Result struct {
	Valid        bool
	InvalidCount int
	Outcome      Outcome

	// Feedback holds the aggregate message for the outcome (when the
	// problem defines one) followed by one entry per slot; a slot without
	// feedback text has "". Nil when the problem is centralized.
	Feedback []string
}

// IsSubmissionWellFormed reports whether sub names the problem and every
// identity it carries for the problem belongs to one of its answers. Slot
// correctness and slot count are not checked.
func IsSubmissionWellFormed(p *Problem, sub Submission) bool {
	slots, ok := sub[p.id]
	if !ok {
		return false
	}
	for _, s := range slots {
		if !p.Knows(identity.ID(s)) {
			return false
		}
	}
	return true
}

// Grade scores sub against the problem. Slot i is correct when the chosen
// identity is that of question i's answer, or of any other question whose
// answer text is identical.
//
// Grade expects IsSubmissionWellFormed to have passed. A missing problem
// entry, a slot count different from the item count, or an unknown identity
// yields a *GradingError instead of a score.
func Grade(p *Problem, sub Submission) (Result, error) {
	slots, ok := sub[p.id]
	if !ok {
		return Result{}, &GradingError{ProblemID: p.id, Slot: -1, Reason: "submission does not include this problem"}
	}
	if len(slots) != len(p.items) {
		return Result{}, &GradingError{
			ProblemID: p.id,
			Slot:      -1,
			Reason:    fmt.Sprintf("expected %d answers, got %d", len(p.items), len(slots)),
		}
	}

	items := make([]string, len(p.items))
	invalid := 0
	for i, s := range slots {
		owners, known := p.slots[identity.ID(s)]
		if !known {
			return Result{}, &GradingError{ProblemID: p.id, Slot: i, Identity: s, Reason: "unknown answer identity"}
		}
		if slices.Contains(owners, i) {
			items[i] = p.items[i].SuccessFeedback
		} else {
			invalid++
			items[i] = p.items[i].ErrorFeedback
		}
	}

	res := Result{InvalidCount: invalid}
	var aggregate string
	switch {
	case invalid == 0:
		res.Valid = true
		res.Outcome = OutcomeAllCorrect
		aggregate = p.allSuccessFeedback
	case invalid < len(p.items):
		res.Outcome = OutcomePartial
		aggregate = p.partialSuccessFeedback
	default:
		res.Outcome = OutcomeAllWrong
		aggregate = p.allErrorFeedback
	}

	if p.centralize {
		return res, nil
	}
	if aggregate != "" {
		res.Feedback = append(res.Feedback, aggregate)
	}
	res.Feedback = append(res.Feedback, items...)
	return res, nil
}
