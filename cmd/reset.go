package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local progress data",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		if !resetForce {
			return fmt.Errorf("this deletes %s permanently; pass --force to confirm", path)
		}
		for _, p := range []string{path, path + "-wal", path + "-shm"} {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", p, err)
			}
		}
		fmt.Println("所有进度已重置")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "skip confirmation")
}
