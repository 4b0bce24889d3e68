package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumeng/mathquest/internal/progress"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the daily check-in history",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := progress.NewTracker(st)
		ctx := cmd.Context()

		fmt.Printf("连续打卡 %d 天", tracker.Streak(ctx))
		if tracker.IsTodayCheckedIn(ctx) {
			fmt.Println("（今日已打卡）")
		} else {
			fmt.Println("（今日未打卡）")
		}
		fmt.Println()

		for _, r := range tracker.Checkins(ctx) {
			if r.IsCheckedIn {
				fmt.Printf("✓ %s  得分 %-3d 答对 %d/%d\n",
					r.Date, r.Score, r.QuestionsCorrect, r.QuestionsTotal)
			} else {
				fmt.Printf("✗ %s  未打卡\n", r.Date)
			}
		}
		return nil
	},
}
