package cmd

import (
	"fmt"

	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a study plan for an exam",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("timeframe")
		tf, err := syllabus.LookupTimeframe(key)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		p := rt.svc.Profiles.Current()
		exam := p.ExamType
		if raw, _ := cmd.Flags().GetString("exam"); raw != "" {
			e, ok := profile.ParseExam(raw)
			if !ok {
				return fmt.Errorf("unknown exam %q", raw)
			}
			exam = e
		}

		text, err := rt.svc.Lessons.StudyPlan(cmd.Context(), exam, tf, p)
		if err != nil {
			return err
		}
		fmt.Printf("%s plan for %s (%d days)\n\n%s\n", tf.Label, exam, tf.Days, text)
		return nil
	},
}

func init() {
	planCmd.Flags().String("timeframe", syllabus.DefaultTimeframe, "1month, 3months, 6months or 1year")
	planCmd.Flags().String("exam", "", "Exam to plan for (default: from profile)")
}
