package cmd

import (
	"fmt"
	"strings"

	"github.com/quizmark/quizmark/internal/keystore"
	"github.com/quizmark/quizmark/internal/llm"
	"github.com/quizmark/quizmark/internal/ratelimit"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show AI provider configuration and rate-limit status",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := keystore.DefaultPath()
		if err != nil {
			return err
		}
		ks, err := keystore.Open(path)
		if err != nil {
			return err
		}

		fmt.Printf("%-12s  %-28s  %-6s  %-5s  %-7s  %s\n",
			"Provider", "Default model", "Vision", "JSON", "Key", "Requests")
		fmt.Println(strings.Repeat("─", 80))

		for _, id := range llm.ProviderIDs() {
			info, _ := llm.Info(id)

			keyState := "—"
			if _, source, ok := ks.Lookup(id); ok {
				keyState = source
			}

			st := limiter.Status(id)
			requests := fmt.Sprintf("%d/%d", st.RequestCount, ratelimit.DefaultMaxRequests)
			if !st.CanRequest {
				requests += fmt.Sprintf(" (wait %ds)", int(st.WaitTime.Seconds())+1)
			}

			fmt.Printf("%-12s  %-28s  %-6s  %-5s  %-7s  %s\n",
				id, info.DefaultModel,
				yesNo(info.SupportsVision), yesNo(info.SupportsStructuredOutput),
				keyState, requests)
		}
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
