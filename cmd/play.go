package cmd

import (
	"github.com/abhisek/matchup/internal/matching"
	"github.com/abhisek/matchup/internal/play"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <problem-id>",
	Short: "Solve a problem in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetString("seed")
		locale, _ := cmd.Flags().GetString("locale")

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

		events := s.EventRepo()
		return play.Run(play.Config{
			Problem: p,
			Locale:  locale,
			Seed:    seed,
			OnGraded: func(res matching.Result) error {
				return recordGrade(ctx, events, taskID, p, res)
			},
		})
	},
}

func init() {
	addTaskFlag(playCmd)
	playCmd.Flags().String("seed", "", "Session seed (default: ask, suggesting a random one)")
	playCmd.Flags().String("locale", "", "Locale the problem is shown in")
}
