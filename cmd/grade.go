package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/matchup/internal/matching"
	"github.com/spf13/cobra"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <problem-id> <identity>...",
	Short: "Grade one submission",
	Long: `Grade a submission given as one answer identity per question, in
question order. Identities are the values "present" prints next to each
answer. The outcome is recorded in the local event log.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		p, taskID, err := matchingProblem(ctx, cmd, s, args[0])
		if err != nil {
			return err
		}

		sub := matching.Submission{p.ID(): args[1:]}
		if !matching.IsSubmissionWellFormed(p, sub) {
			return fmt.Errorf("submission rejected: it names answers problem %s does not have", p.ID())
		}
		res, err := matching.Grade(p, sub)
		if err != nil {
			return fmt.Errorf("submission rejected: %w", err)
		}

		if err := recordGrade(ctx, s.EventRepo(), taskID, p, res); err != nil {
			fmt.Fprintln(os.Stderr, "warning:", err)
		}

		mark := "✓"
		if !res.Valid {
			mark = "✗"
		}
		fmt.Printf("%s %s: %s, %d of %d wrong\n", mark, p.ID(), res.Outcome, res.InvalidCount, p.Len())
		for _, line := range res.Feedback {
			if line != "" {
				fmt.Println("  " + line)
			}
		}
		return nil
	},
}

func init() {
	addTaskFlag(gradeCmd)
}
