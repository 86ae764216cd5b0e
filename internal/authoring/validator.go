package authoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/matchup/internal/matching"
)

// Validator checks a draft. Implementations are stateless and safe for
// concurrent use.
type Validator interface {
	// Name identifies the validator in errors, e.g. "structural".
	Name() string

	// Validate returns nil if the draft passes.
	Validate(d *Draft, in Input) *ValidationError
}

// ValidationError describes why a draft failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Length limits for drafted text.
const (
	maxHeaderLen   = 200
	maxTextLen     = 200
	maxFeedbackLen = 300
)

// StructuralValidator checks pair count and text lengths.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(d *Draft, in Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	if in.Pairs > 0 && len(d.Pairs) != in.Pairs {
		return fail("got %d pairs, want %d", len(d.Pairs), in.Pairs)
	}
	if len(d.Header) > maxHeaderLen {
		return fail("header exceeds %d characters", maxHeaderLen)
	}
	for i, p := range d.Pairs {
		if len(p.Question) > maxTextLen || len(p.Answer) > maxTextLen {
			return fail("pair %d: question or answer exceeds %d characters", i+1, maxTextLen)
		}
		if len(p.SuccessFeedback) > maxFeedbackLen || len(p.ErrorFeedback) > maxFeedbackLen {
			return fail("pair %d: feedback exceeds %d characters", i+1, maxFeedbackLen)
		}
	}
	for _, fb := range []string{d.AllSuccessFeedback, d.PartialSuccessFeedback, d.AllErrorFeedback} {
		if len(fb) > maxFeedbackLen {
			return fail("aggregate feedback exceeds %d characters", maxFeedbackLen)
		}
	}
	return nil
}

// GiveawayValidator rejects pairs whose answer is spelled out in the
// question, and questions the author asked to avoid.
type GiveawayValidator struct{}

func (v *GiveawayValidator) Name() string { return "giveaway" }

func (v *GiveawayValidator) Validate(d *Draft, in Input) *ValidationError {
	avoid := make(map[string]bool, len(in.Avoid))
	for _, q := range in.Avoid {
		avoid[fold(q)] = true
	}

	for i, p := range d.Pairs {
		q, a := fold(p.Question), fold(p.Answer)
		if a != "" && strings.Contains(q, a) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("pair %d: question %q contains its answer", i+1, p.Question),
				Retryable: true,
			}
		}
		if avoid[q] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("pair %d: question %q was asked to be avoided", i+1, p.Question),
				Retryable: true,
			}
		}
	}
	return nil
}

// NormalizeValidator runs the draft through matching.Normalize, so a draft
// that passes can be published unchanged.
type NormalizeValidator struct{}

func (v *NormalizeValidator) Name() string { return "normalize" }

func (v *NormalizeValidator) Validate(d *Draft, _ Input) *ValidationError {
	_, err := d.Problem("draft")
	if err == nil {
		return nil
	}

	var defErr *matching.DefinitionError
	if errors.As(err, &defErr) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s: %s", defErr.Rule, defErr.Detail),
			Retryable: defErr.Rule != matching.RuleMalformed,
		}
	}
	return &ValidationError{Validator: v.Name(), Message: err.Error()}
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
