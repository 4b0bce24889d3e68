package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumeng/mathquest/internal/progress"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the leaderboard and your position",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := progress.NewTracker(st)
		ctx := cmd.Context()

		p := tracker.Profile(ctx)
		userRank := tracker.CurrentUserRank(ctx)
		fmt.Printf("你的名次: 第 %d 名（%d 分，%s）\n\n", userRank, p.TotalScore, p.Level)

		limit, _ := cmd.Flags().GetInt("limit")
		for i, e := range tracker.Rankings(ctx) {
			if limit > 0 && i >= limit {
				break
			}
			marker := "  "
			if e.Rank == userRank {
				marker = "→ "
			}
			fmt.Printf("%s%3d  %-8s %5d 分  %s  连续%d天\n",
				marker, e.Rank, e.Name, e.Score, e.Level, e.Streak)
		}
		return nil
	},
}

func init() {
	rankCmd.Flags().Int("limit", 10, "Number of entries to show (0 = all)")
}
