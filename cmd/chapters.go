package cmd

import (
	"fmt"

	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/spf13/cobra"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters <subject>",
	Short: "List the chapters of a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		class, _ := cmd.Flags().GetString("class")
		if class == "" {
			class = rt.svc.Profiles.Current().Class()
		}

		chapters, source := rt.svc.Catalog.Chapters(cmd.Context(), class, args[0])
		fmt.Printf("%s, class %s\n", args[0], class)
		for _, ch := range chapters {
			fmt.Printf("%3d. %s\n", ch.Order, ch.Name)
		}
		if source == syllabus.SourceFallback {
			fmt.Println("\n(built-in chapter list; run `studymate syllabus seed` to store it)")
		}
		return nil
	},
}

func init() {
	chaptersCmd.Flags().String("class", "", "Class to list, 11 or 12 (default: from profile)")
}
