package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/matchup/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show grading statistics per problem",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		stats, err := s.EventRepo().GradeStats(ctx)
		if err != nil {
			return fmt.Errorf("query grade stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No graded submissions yet.")
			return nil
		}

		fmt.Printf("%-24s  %8s  %6s  %6s  %10s  %s\n",
			"Problem", "Attempts", "Passed", "Pass%", "Avg wrong", "Last graded")
		fmt.Println(strings.Repeat("─", 80))
		var attempts, passed int
		for _, st := range stats {
			fmt.Printf("%-24s  %8d  %6d  %5.0f%%  %10.2f  %s\n",
				truncate(st.ProblemID, 24),
				st.Attempts,
				st.Passed,
				percent(st.Passed, st.Attempts),
				st.MeanInvalid,
				st.LastGraded.Local().Format("2006-01-02 15:04"),
			)
			attempts += st.Attempts
			passed += st.Passed
		}
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%-24s  %8d  %6d  %5.0f%%\n", "TOTAL", attempts, passed, percent(passed, attempts))

		if recent <= 0 {
			return nil
		}
		events, err := s.EventRepo().QueryGradeEvents(ctx, store.QueryOpts{Limit: recent})
		if err != nil {
			return fmt.Errorf("query grade events: %w", err)
		}
		fmt.Println()
		fmt.Println("Recent Submissions")
		fmt.Println(strings.Repeat("─", 80))
		for _, e := range events {
			fmt.Printf("%-19s  %-24s  %-12s  %2d/%-2d wrong  %s\n",
				e.Timestamp.Local().Format(timeLayout),
				truncate(e.ProblemID, 24),
				e.Outcome,
				e.InvalidCount,
				e.ItemCount,
				e.Origin,
			)
		}
		return nil
	},
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return 100 * float64(n) / float64(of)
}

func init() {
	statsCmd.Flags().IntP("recent", "n", 0, "Also list this many recent submissions")
}
