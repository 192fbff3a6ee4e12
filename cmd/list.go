package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		total := 0
		for _, realm := range store.Realms {
			quizzes, err := st.QuizRepo(realm).List(ctx)
			if err != nil {
				return err
			}
			for _, q := range quizzes {
				fmt.Printf("%s  %-40s  %s/%s  %d questions\n",
					q.ID, q.Title, q.Topic, q.Difficulty, len(q.Questions))
				total++
			}
		}
		if total == 0 {
			fmt.Println("No quizzes stored.")
		}
		return nil
	},
}
