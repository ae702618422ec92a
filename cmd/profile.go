package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/studymate/internal/profile"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the learner profile",
}

// profileView is the YAML shape printed by profile show -o yaml.
type profileView struct {
	UserID   string   `yaml:"user_id"`
	Name     string   `yaml:"name"`
	Grade    int      `yaml:"grade"`
	Exam     string   `yaml:"exam"`
	Style    string   `yaml:"learning_style"`
	Subjects []string `yaml:"subjects"`
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		rt, err := openRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.firstRun {
			fmt.Println("No profile yet. Run `studymate` or `studymate profile set` to create one.")
			return nil
		}
		p := rt.svc.Profiles.Current()

		if output == "yaml" {
			return yaml.NewEncoder(os.Stdout).Encode(profileView{
				UserID:   p.UserID,
				Name:     p.FullName,
				Grade:    p.GradeLevel,
				Exam:     p.ExamType,
				Style:    p.LearningStyle,
				Subjects: p.PreferredSubjects,
			})
		}

		fmt.Printf("Name:      %s\n", p.FullName)
		fmt.Printf("Class:     %d\n", p.GradeLevel)
		fmt.Printf("Exam:      %s\n", p.ExamType)
		fmt.Printf("Style:     %s\n", p.LearningStyle)
		fmt.Printf("Subjects:  %s\n", strings.Join(p.PreferredSubjects, ", "))
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the profile",
	Long:  "Only the flags given are changed; the rest keep their current values.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		p := rt.svc.Profiles.Current()
		flags := cmd.Flags()
		if flags.Changed("name") {
			p.FullName, _ = flags.GetString("name")
		}
		if flags.Changed("grade") {
			p.GradeLevel, _ = flags.GetInt("grade")
		}
		if flags.Changed("exam") {
			raw, _ := flags.GetString("exam")
			exam, ok := profile.ParseExam(raw)
			if !ok {
				return fmt.Errorf("unknown exam %q (want one of %s)", raw, strings.Join(profile.Exams, ", "))
			}
			p.ExamType = exam
		}
		if flags.Changed("style") {
			raw, _ := flags.GetString("style")
			style, ok := profile.ParseStyle(raw)
			if !ok {
				return fmt.Errorf("unknown learning style %q (want one of %s)", raw, strings.Join(profile.Styles, ", "))
			}
			p.LearningStyle = style
		}
		if flags.Changed("subjects") {
			p.PreferredSubjects, _ = flags.GetStringSlice("subjects")
		}

		saved, err := rt.svc.Profiles.Update(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("Saved profile for %s (class %d, %s).\n", displayName(saved.FullName), saved.GradeLevel, saved.ExamType)
		return nil
	},
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "learner"
	}
	return name
}

func init() {
	profileShowCmd.Flags().StringP("output", "o", "text", "Output format: text or yaml")

	profileSetCmd.Flags().String("name", "", "Full name")
	profileSetCmd.Flags().Int("grade", 11, "Class, 11 or 12")
	profileSetCmd.Flags().String("exam", "", "Boards, NEET, JEE or UPSC")
	profileSetCmd.Flags().String("style", "", "visual, audio or text")
	profileSetCmd.Flags().StringSlice("subjects", nil, "Preferred subjects, comma separated")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
