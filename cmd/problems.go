package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/matchup/internal/task"
	"github.com/spf13/cobra"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "Browse the stored problem registry",
}

var problemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored problems (optionally for one task)",
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, _ := cmd.Flags().GetString("task-id")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.ProblemRepo().List(cmd.Context(), taskID)
		if err != nil {
			return fmt.Errorf("list problems: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No problems stored. Run \"matchup validate --save <task-file>\".")
			return nil
		}

		fmt.Printf("%-24s  %-16s  %-10s  %-12s  %s\n", "Problem", "Task", "Type", "Hash", "Updated")
		fmt.Println(strings.Repeat("─", 86))
		for _, r := range recs {
			fmt.Printf("%-24s  %-16s  %-10s  %-12s  %s\n",
				truncate(r.ProblemID, 24),
				truncate(r.TaskID, 16),
				r.Type,
				truncate(r.ContentHash, 12),
				r.UpdatedAt.Local().Format(timeLayout),
			)
		}
		fmt.Printf("\n%d problems\n", len(recs))
		return nil
	},
}

var problemsShowCmd = &cobra.Command{
	Use:   "show <problem-id>",
	Short: "Print a stored problem as a task file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.ProblemRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("look up problem: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("problem %s not found", args[0])
		}

		taskID := rec.TaskID
		if taskID == "" {
			taskID = rec.ProblemID
		}
		data, err := task.Encode(taskID, "", []task.Entry{{ID: rec.ProblemID, Type: rec.Type, Content: rec.Content}})
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	problemsListCmd.Flags().String("task-id", "", "Only list problems of this task")

	problemsCmd.AddCommand(problemsListCmd)
	problemsCmd.AddCommand(problemsShowCmd)
}
