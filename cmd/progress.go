package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		stats, err := rt.svc.Recorder.Overview(cmd.Context(), rt.svc.Profiles.UserID())
		if err != nil {
			return err
		}

		fmt.Printf("Chapters completed:  %d\n", stats.TopicsCompleted)
		fmt.Printf("Average quiz score:  %d%%\n", stats.AverageQuizScore)
		fmt.Printf("This week:           %d\n", stats.RecentActivity)
		fmt.Printf("Time studied:        %d min\n", stats.TotalTimeMinutes)

		if len(stats.Records) == 0 {
			return nil
		}
		fmt.Println()
		fmt.Printf("%-12s  %-14s  %-32s  %s\n", "Date", "Subject", "Chapter", "Score")
		fmt.Println(strings.Repeat("─", 70))
		for i, r := range stats.Records {
			if limit > 0 && i >= limit {
				break
			}
			score := "-"
			if r.QuizScore != nil {
				score = fmt.Sprintf("%d%%", *r.QuizScore)
			}
			topic := r.Topic
			if len(topic) > 32 {
				topic = topic[:32]
			}
			fmt.Printf("%-12s  %-14s  %-32s  %s\n",
				r.CompletedAt.Local().Format("2006-01-02"), r.Subject, topic, score)
		}
		return nil
	},
}

func init() {
	progressCmd.Flags().Int("limit", 20, "Number of recent chapters to list")
}
