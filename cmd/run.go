package cmd

import (
	"github.com/abhisek/studymate/internal/app"
	"github.com/spf13/cobra"
)

// runApp builds the runtime and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd, runtimeOptions{logToFile: true, voice: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(rt.svc, rt.firstRun)
}
