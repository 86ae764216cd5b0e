package matching

import (
	"crypto/sha256"
	"math/rand/v2"

	"github.com/abhisek/matchup/internal/identity"
)

// DisplayView is everything a renderer needs to show a problem to one
// learner. Answer identities are the only values the client sends back.
type DisplayView struct {
	ProblemID string            `json:"problem_id"`
	Header    string            `json:"header,omitempty"`
	Questions []DisplayQuestion `json:"questions"`
	Answers   []DisplayAnswer   `json:"answers"`
}

// DisplayQuestion is one question slot, in canonical order.
type DisplayQuestion struct {
	Index           int    `json:"index"`
	Text            string `json:"text"`
	SuccessFeedback string `json:"success_feedback,omitempty"`
	ErrorFeedback   string `json:"error_feedback,omitempty"`
}

// DisplayAnswer is one candidate answer in display order.
type DisplayAnswer struct {
	Text     string      `json:"text"`
	Identity identity.ID `json:"identity"`
}

// Present orders the problem's answers for display. Unless the problem is
// unshuffled, the order is a permutation seeded only by the problem id, the
// locale and the session seed: the same triple always yields the same order.
func Present(p *Problem, sessionSeed, locale string) DisplayView {
	view := DisplayView{
		ProblemID: p.id,
		Header:    p.header,
		Questions: make([]DisplayQuestion, len(p.items)),
		Answers:   make([]DisplayAnswer, len(p.items)),
	}
	for i, it := range p.items {
		view.Questions[i] = DisplayQuestion{
			Index:           i,
			Text:            it.Question,
			SuccessFeedback: it.SuccessFeedback,
			ErrorFeedback:   it.ErrorFeedback,
		}
		view.Answers[i] = DisplayAnswer{Text: it.Answer, Identity: identity.Of(it.Answer)}
	}

	if !p.unshuffle {
		r := shuffler(SeedKey(p.id, locale, sessionSeed))
		r.Shuffle(len(view.Answers), func(i, j int) {
			view.Answers[i], view.Answers[j] = view.Answers[j], view.Answers[i]
		})
	}
	return view
}

// SeedKey joins the inputs that determine a display order.
func SeedKey(problemID, locale, sessionSeed string) string {
	return problemID + "#" + locale + "#" + sessionSeed
}

// shuffler returns a generator whose whole state derives from key.
func shuffler(key string) *rand.Rand {
	return rand.New(rand.NewChaCha8(sha256.Sum256([]byte(key))))
}

// Transform returns a copy of v with fn applied to every non-empty display
// text. Identities are left alone. Hosts use it to plug in translation and
// markup rendering.
func (v DisplayView) Transform(fn func(string) string) DisplayView {
	apply := func(s string) string {
		if s == "" {
			return ""
		}
		return fn(s)
	}

	out := DisplayView{
		ProblemID: v.ProblemID,
		Header:    apply(v.Header),
		Questions: make([]DisplayQuestion, len(v.Questions)),
		Answers:   make([]DisplayAnswer, len(v.Answers)),
	}
	for i, q := range v.Questions {
		out.Questions[i] = DisplayQuestion{
			Index:           q.Index,
			Text:            apply(q.Text),
			SuccessFeedback: apply(q.SuccessFeedback),
			ErrorFeedback:   apply(q.ErrorFeedback),
		}
	}
	for i, a := range v.Answers {
		out.Answers[i] = DisplayAnswer{Text: apply(a.Text), Identity: a.Identity}
	}
	return out
}
