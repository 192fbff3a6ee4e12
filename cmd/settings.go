package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the stored LLM provider configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()

		if clear, _ := cmd.Flags().GetBool("clear"); clear {
			if err := settings.Clear(ctx, st); err != nil {
				return err
			}
			fmt.Println("Settings cleared.")
			return nil
		}

		provider, _ := cmd.Flags().GetString("provider")
		apiKey, _ := cmd.Flags().GetString("api-key")
		model, _ := cmd.Flags().GetString("model")

		if provider != "" || apiKey != "" || model != "" {
			stored, err := settings.Load(ctx, st)
			if err != nil {
				return err
			}
			if provider != "" {
				stored.Provider = provider
			}
			if apiKey != "" {
				stored.APIKey = apiKey
			}
			if model != "" {
				stored.Model = model
			}
			if err := settings.Save(ctx, st, stored); err != nil {
				return err
			}
			fmt.Println("Settings saved.")
			return nil
		}

		stored, err := settings.Load(ctx, st)
		if err != nil {
			return err
		}
		if stored.Empty() {
			fmt.Println("No settings stored. Provider configuration comes from environment variables.")
			return nil
		}
		fmt.Printf("provider: %s\n", stored.Provider)
		fmt.Printf("api key:  %s\n", maskKey(stored.APIKey))
		fmt.Printf("model:    %s\n", stored.Model)
		return nil
	},
}

func init() {
	settingsCmd.Flags().String("provider", "", "LLM provider: gemini, openai, or anthropic")
	settingsCmd.Flags().String("api-key", "", "API key for the selected provider")
	settingsCmd.Flags().String("model", "", "Model name override")
	settingsCmd.Flags().Bool("clear", false, "Remove all stored settings")
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
