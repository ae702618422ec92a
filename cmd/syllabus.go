package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syllabusCmd = &cobra.Command{
	Use:   "syllabus",
	Short: "Manage the chapter catalog",
}

var syllabusSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the built-in chapter lists to the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		classes, _ := cmd.Flags().GetStringSlice("class")

		rt, err := openRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		n, err := rt.svc.Catalog.Seed(cmd.Context(), classes...)
		if err != nil {
			return fmt.Errorf("seed syllabus: %w", err)
		}
		fmt.Printf("Seeded %d chapters.\n", n)
		return nil
	},
}

func init() {
	syllabusSeedCmd.Flags().StringSlice("class", nil, "Classes to seed (default 11,12)")
	syllabusCmd.AddCommand(syllabusSeedCmd)
}
