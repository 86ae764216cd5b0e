package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/matchup/internal/matching"
	"github.com/abhisek/matchup/internal/store"
	"github.com/abhisek/matchup/internal/task"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <task-file>",
	Short: "Check every problem of a task file",
	Long: `Load a YAML or JSON task file and check every problem against its
authoring rules. With --save the problems are stored in the local registry
so present, grade and play can find them without the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")

		t, err := task.LoadFile(args[0], newRegistry())
		if err != nil {
			var defErr *matching.DefinitionError
			if errors.As(err, &defErr) {
				fmt.Fprintf(os.Stderr, "✗ %s\n  rule:   %s\n  detail: %s\n", defErr.ProblemID, defErr.Rule, defErr.Detail)
			}
			return err
		}

		for _, p := range t.Problems {
			line := fmt.Sprintf("✓ %s (%s)", p.ID(), p.Type())
			if mp, ok := p.(*matching.Problem); ok {
				line += fmt.Sprintf(", %d items", mp.Len())
			}
			fmt.Println(line)
		}
		fmt.Printf("Task %s: %d problems OK (format %s)\n", t.ID, len(t.Problems), t.Format)

		if !save {
			return nil
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.ProblemRepo()
		for _, p := range t.Problems {
			changed, err := repo.Save(ctx, store.ProblemRecord{
				ProblemID: p.ID(),
				TaskID:    t.ID,
				Type:      p.Type(),
				Content:   canonicalContent(t, p),
			})
			if err != nil {
				return fmt.Errorf("save %s: %w", p.ID(), err)
			}
			status := "unchanged"
			if changed {
				status = "saved"
			}
			fmt.Printf("  %-24s %s\n", p.ID(), status)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("save", false, "Store the problems in the local registry")
}
