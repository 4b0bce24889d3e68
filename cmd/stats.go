package cmd

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumeng/mathquest/internal/progress"
	"github.com/lumeng/mathquest/internal/questionbank"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question bank and progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := progress.NewTracker(st)
		ctx := cmd.Context()

		p := tracker.Profile(ctx)
		fmt.Printf("总积分 %d  等级 %s  连续打卡 %d 天  待复习错题 %d\n\n",
			p.TotalScore, p.Level, tracker.Streak(ctx), tracker.UnreviewedCount(ctx))

		source := questionbank.SourceFor(resolveCatalog(cmd))
		bank := questionbank.New(source, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err := bank.Load(ctx); err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		s := bank.Stats()
		fmt.Printf("题库共 %d 题\n\n", s.TotalQuestions)

		fmt.Println("按学段:")
		for _, k := range sortedKeys(s.ByStage) {
			fmt.Printf("  %-8s %d\n", k, s.ByStage[k])
		}
		fmt.Println("按专题:")
		for _, k := range sortedKeys(s.ByTopic) {
			fmt.Printf("  %-8s %d\n", k, s.ByTopic[k])
		}
		return nil
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
