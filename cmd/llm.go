package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studymate/internal/llm"
	"github.com/abhisek/studymate/internal/tts"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the AI provider and its usage",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which chat and speech backends are active",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		cfg := rt.cfg
		voice := tts.NewGatewayFromConfig(cmd.Context(), cfg.TTS, rt.log)

		fmt.Printf("Provider:  %s\n", cfg.LLM.Provider)
		fmt.Printf("Model:     %s\n", rt.chat.ModelID())
		fmt.Printf("Chat:      %s\n", describe(rt.chat.Availability().Available, rt.chat.Availability().Reason, "live", "simulated"))
		fmt.Printf("Voice:     %s\n", describe(voice.Availability().Available, voice.Availability().Reason, "ElevenLabs", "local speech"))
		fmt.Printf("Backend:   %s\n", rt.store.Dialect())
		return nil
	},
}

func describe(ok bool, reason, live, fallback string) string {
	if ok {
		return live
	}
	if reason == "" {
		return fallback
	}
	return fmt.Sprintf("%s (%s)", fallback, reason)
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show aggregated token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		usage, err := rt.store.EventRepo().Usage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Printf("%-32s  %6s  %6s  %10s  %10s  %10s\n",
			"Model", "Calls", "OK", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 84))

		var totalCost float64
		var totalIn, totalOut, totalCalls int64
		var unknownModels []string
		for _, u := range usage {
			totalCalls += u.Requests
			totalIn += u.InputTokens
			totalOut += u.OutputTokens

			cost := llm.LookupCost(u.Model)
			costStr := "?"
			if cost == nil {
				unknownModels = append(unknownModels, u.Model)
			} else {
				c := cost.Cost(int(u.InputTokens), int(u.OutputTokens))
				totalCost += c
				costStr = formatCost(c)
			}
			fmt.Printf("%-32s  %6d  %6d  %10d  %10d  %10s\n",
				truncate(u.Model, 32), u.Requests, u.Successes, u.InputTokens, u.OutputTokens, costStr)
		}

		fmt.Println(strings.Repeat("─", 84))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6d  %6s  %10d  %10d  %10s\n",
			label, totalCalls, "", totalIn, totalOut, formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmUsageCmd)
}
