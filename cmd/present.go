package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/matchup/internal/matching"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var presentCmd = &cobra.Command{
	Use:   "present <problem-id>",
	Short: "Print the display view of a problem as JSON",
	Long: `Print the questions and the ordered candidate answers of a problem, as a
renderer would receive them. The answer order depends only on the problem
id, the locale and the seed; without --seed a random one is used and
printed on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetString("seed")
		locale, _ := cmd.Flags().GetString("locale")

		ctx := cmd.Context()
		var p *matching.Problem
		var err error
		if path, _ := cmd.Flags().GetString("task"); path != "" {
			p, _, err = matchingProblem(ctx, cmd, nil, args[0])
		} else {
			s, openErr := openStore(cmd)
			if openErr != nil {
				return openErr
			}
			defer s.Close()
			p, _, err = matchingProblem(ctx, cmd, s, args[0])
		}
		if err != nil {
			return err
		}

		if seed == "" {
			seed = uuid.NewString()
			fmt.Fprintln(os.Stderr, "seed:", seed)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matching.Present(p, seed, locale))
	},
}

func init() {
	addTaskFlag(presentCmd)
	presentCmd.Flags().String("seed", "", "Session seed (default: random)")
	presentCmd.Flags().String("locale", "", "Locale the view is shown in")
}
