package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/history"
	"github.com/abhisek/quizdeck/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset [quiz-id]",
	Short: "Reset score history for one quiz, or all quizzes with --all",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return fmt.Errorf("provide a quiz id or pass --all")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()

		if all {
			for _, realm := range store.Realms {
				if err := history.NewService(st.HistoryRepo(realm)).ResetAll(ctx); err != nil {
					return err
				}
			}
			fmt.Println("All score history cleared.")
			return nil
		}

		for _, realm := range store.Realms {
			if err := history.NewService(st.HistoryRepo(realm)).Reset(ctx, args[0]); err != nil {
				return err
			}
		}
		fmt.Printf("Score history cleared for %s.\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Clear score history for every quiz")
}
