package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumeng/mathquest/internal/progress"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List wrong questions and mark them reviewed",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := progress.NewTracker(st)
		ctx := cmd.Context()

		if id, _ := cmd.Flags().GetString("done"); id != "" {
			if err := tracker.MarkReviewed(ctx, id); err != nil {
				return err
			}
			fmt.Println("marked reviewed:", id)
			return nil
		}

		all, _ := cmd.Flags().GetBool("all")
		entries := tracker.WrongQuestions(ctx)
		shown := 0
		for _, wq := range entries {
			if wq.Reviewed && !all {
				continue
			}
			status := "待复习"
			if wq.Reviewed {
				status = "已复习"
			}
			fmt.Printf("%s  %s  [%s]\n", wq.ID, wq.Date, status)
			fmt.Printf("    %s\n", wq.Question)
			fmt.Printf("    正确: %s   你的答案: %s\n", wq.CorrectAnswer, wq.UserAnswer)
			shown++
		}
		if shown == 0 {
			fmt.Println("没有待复习的错题")
		}
		fmt.Printf("\n共 %d 条，%d 待复习\n", len(entries), tracker.UnreviewedCount(ctx))
		return nil
	},
}

func init() {
	reviewCmd.Flags().String("done", "", "Mark the wrong question with this id as reviewed")
	reviewCmd.Flags().Bool("all", false, "Include already-reviewed questions")
}
