package cmd

import (
	"github.com/abhisek/studymate/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studymate",
	Short: "AI study buddy for Class 11 and 12",
	Long:  "StudyMate is a terminal study companion: chapter roadmaps, bite-sized lessons, flashcards and quizzes, with optional narration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite path or postgres:// URL (overrides STUDYMATE_DB_URL)")
	rootCmd.PersistentFlags().String("user", "", "Learner id (overrides STUDYMATE_USER_ID)")
	rootCmd.PersistentFlags().String("env", "", "Env file to load instead of ./.env")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(syllabusCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration with the persistent flags applied on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var o config.Overrides
	o.DBURL, _ = cmd.Flags().GetString("db")
	o.UserID, _ = cmd.Flags().GetString("user")
	o.EnvFile, _ = cmd.Flags().GetString("env")

	cfg, err := config.Load(o)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
