package cmd

import (
	"fmt"

	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/spf13/cobra"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap <subject> <chapter>",
	Short: "Generate a day-wise roadmap for a chapter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		if clamped := syllabus.ClampDays(days); clamped != days {
			return fmt.Errorf("--days must be between %d and %d", syllabus.MinDays, syllabus.MaxDays)
		}

		rt, err := openRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		text, err := rt.svc.Lessons.Roadmap(cmd.Context(), args[0], args[1], days, rt.svc.Profiles.Current())
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	roadmapCmd.Flags().Int("days", syllabus.DefaultDays, "Days to spread the chapter over")
}
