package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/generate"
	"github.com/abhisek/quizdeck/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz without entering the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		details, _ := cmd.Flags().GetString("details")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		if topic == "" {
			return fmt.Errorf("--topic is required")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		generator, err := newGenerator(ctx, st)
		if err != nil {
			return fmt.Errorf("no usable LLM provider: %w", err)
		}

		fmt.Printf("Generating a %s quiz on %q...\n", difficulty, topic)

		q, err := generator.Generate(ctx, generate.Input{
			Topic:      topic,
			Details:    details,
			Difficulty: difficulty,
		})
		if err != nil {
			return err
		}

		if err := st.QuizRepo(store.RealmCustom).Prepend(ctx, q); err != nil {
			return fmt.Errorf("save quiz: %w", err)
		}

		fmt.Printf("Saved %q (%d questions, id %s)\n", q.Title, len(q.Questions), q.ID)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("topic", "", "Quiz topic (required)")
	generateCmd.Flags().String("details", "", "Extra instructions for the quiz author")
	generateCmd.Flags().String("difficulty", "beginner", "beginner, intermediate, or advanced")
}
