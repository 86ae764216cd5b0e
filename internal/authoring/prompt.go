package authoring

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write matching exercises for an online course.

Rules:
- A matching exercise is a list of questions; the learner assigns one answer to each question from the pooled answers of all questions.
- Every question must be unique. Answers may repeat only if they are genuinely correct for several questions.
- Each answer must be unambiguous: it should fit its own question and no other question in the exercise, unless it is a deliberate repeat.
- Never put the answer inside its question.
- Keep questions and answers short: a word or a phrase, at most one sentence.
- Per-question feedback is optional; when given, success feedback confirms and adds a fact, error feedback hints at the right answer without stating it.
- Write the three aggregate feedback messages for all correct, partially correct and all wrong submissions.
- Use plain text, no markup.`

// buildUserMessage constructs the user message for one attempt. Rejections
// lists why earlier drafts of this request were refused.
func buildUserMessage(in Input, cfg Config, rejections []string) string {
	lang := in.Language
	if lang == "" {
		lang = "English"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Pairs: %d\n", in.Pairs)
	fmt.Fprintf(&b, "Language: %s\n", lang)

	b.WriteString("\nQuestions to avoid:\n")
	b.WriteString(numbered(in.Avoid, cfg.MaxAvoid))

	if len(rejections) > 0 {
		b.WriteString("\n\nEarlier drafts were rejected:\n")
		b.WriteString(numbered(rejections, 0))
	}

	return b.String()
}

// numbered formats lines as a numbered list, keeping only the last max
// entries when max > 0. Returns "None" for an empty list.
func numbered(lines []string, max int) string {
	if len(lines) == 0 {
		return "None"
	}
	if max > 0 && len(lines) > max {
		lines = lines[len(lines)-max:]
	}

	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, l)
	}
	return strings.TrimRight(b.String(), "\n")
}
