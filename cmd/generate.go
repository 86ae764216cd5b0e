package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/matchup/internal/authoring"
	"github.com/abhisek/matchup/internal/llm"
	"github.com/abhisek/matchup/internal/matching"
	"github.com/abhisek/matchup/internal/play"
	"github.com/abhisek/matchup/internal/store"
	"github.com/abhisek/matchup/internal/task"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a matching problem with an LLM",
	Long: `Ask the configured LLM provider for a matching problem on a topic and
print it as a YAML task file. The draft is checked with the same rules as
"validate" before it is printed.

The provider is chosen with MATCHUP_LLM_PROVIDER (anthropic, openai,
openrouter, gemini) and the matching MATCHUP_<PROVIDER>_API_KEY.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topic", "", "What the problem is about (required)")
	generateCmd.Flags().Int("pairs", 4, "Number of question/answer pairs")
	generateCmd.Flags().String("language", "", "Language of the problem (default English)")
	generateCmd.Flags().String("id", "generated", "Problem id")
	generateCmd.Flags().String("task-id", "generated", "Task id of the printed task file")
	generateCmd.Flags().String("avoid", "", "Task file whose questions must not be reused")
	generateCmd.Flags().StringP("out", "o", "", "Write the task file here instead of stdout")
	generateCmd.Flags().Bool("save", false, "Store the problem in the local registry")
	generateCmd.Flags().Bool("play", false, "Solve the drafted problem right away")
	_ = generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	pairs, _ := cmd.Flags().GetInt("pairs")
	language, _ := cmd.Flags().GetString("language")
	id, _ := cmd.Flags().GetString("id")
	taskID, _ := cmd.Flags().GetString("task-id")
	avoidPath, _ := cmd.Flags().GetString("avoid")
	out, _ := cmd.Flags().GetString("out")
	save, _ := cmd.Flags().GetBool("save")
	playNow, _ := cmd.Flags().GetBool("play")

	in := authoring.Input{Topic: topic, Pairs: pairs, Language: language}
	if avoidPath != "" {
		avoid, err := questionsOf(avoidPath)
		if err != nil {
			return err
		}
		in.Avoid = avoid
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	provider, err := llm.NewProviderFromEnv(ctx, s.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Drafting %d pairs on %q with %s...\n", pairs, topic, provider.ModelID())
	draft, err := authoring.New(provider, authoring.DefaultConfig()).Generate(ctx, in)
	if err != nil {
		return fmt.Errorf("generate problem: %w", err)
	}
	p, err := draft.Problem(id)
	if err != nil {
		return err
	}

	data, err := task.Encode(taskID, topic, []task.Entry{{ID: p.ID(), Type: matching.Type, Content: p.Raw()}})
	if err != nil {
		return err
	}
	if out == "" {
		os.Stdout.Write(data)
	} else {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write task file: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Wrote", out)
	}

	if save {
		if _, err := s.ProblemRepo().Save(ctx, store.ProblemRecord{
			ProblemID: p.ID(),
			TaskID:    taskID,
			Type:      matching.Type,
			Content:   p.Raw(),
		}); err != nil {
			return fmt.Errorf("save %s: %w", p.ID(), err)
		}
	}

	if !playNow {
		return nil
	}
	events := s.EventRepo()
	return play.Run(play.Config{
		Problem: p,
		OnGraded: func(res matching.Result) error {
			return recordGrade(ctx, events, taskID, p, res)
		},
	})
}

// questionsOf lists every question text of the matching problems in a
// task file.
func questionsOf(path string) ([]string, error) {
	t, err := task.LoadFile(path, newRegistry())
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range t.Problems {
		mp, ok := p.(*matching.Problem)
		if !ok {
			continue
		}
		for _, it := range mp.Items() {
			out = append(out, it.Question)
		}
	}
	return out, nil
}
