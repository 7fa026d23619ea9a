package cmd

import (
	"fmt"

	"github.com/quizmark/quizmark/internal/keystore"
	"github.com/quizmark/quizmark/internal/llm"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage stored provider API keys",
}

var keysSetCmd = &cobra.Command{
	Use:   "set <provider> <key>",
	Short: "Store an API key for a provider",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := args[0]
		if _, ok := llm.Info(provider); !ok {
			return fmt.Errorf("unknown provider %q (expected one of %v)", provider, llm.ProviderIDs())
		}

		ks, err := openKeystore()
		if err != nil {
			return err
		}
		if err := ks.Set(provider, args[1]); err != nil {
			return err
		}
		fmt.Printf("Stored key for %s.\n", provider)
		return nil
	},
}

var keysRmCmd = &cobra.Command{
	Use:   "rm <provider>",
	Short: "Remove a stored API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks, err := openKeystore()
		if err != nil {
			return err
		}
		if err := ks.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed key for %s.\n", args[0])
		return nil
	},
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored API keys (masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ks, err := openKeystore()
		if err != nil {
			return err
		}

		providers := ks.Providers()
		if len(providers) == 0 {
			fmt.Println("No keys stored. Use: quizmark keys set <provider> <key>")
			return nil
		}
		for _, p := range providers {
			key, _ := ks.Get(p)
			fmt.Printf("%-12s  %s\n", p, keystore.Mask(key))
		}
		return nil
	},
}

func openKeystore() (*keystore.Store, error) {
	path, err := keystore.DefaultPath()
	if err != nil {
		return nil, err
	}
	return keystore.Open(path)
}

func init() {
	keysCmd.AddCommand(keysSetCmd)
	keysCmd.AddCommand(keysRmCmd)
	keysCmd.AddCommand(keysListCmd)
}
