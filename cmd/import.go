package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/quizfile"
	"github.com/abhisek/quizdeck/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a quiz from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		q, err := quizfile.ImportFile(args[0], nil)
		if err != nil {
			return err
		}

		ctx := context.Background()
		if err := st.QuizRepo(store.RealmCustom).Prepend(ctx, q); err != nil {
			return fmt.Errorf("save quiz: %w", err)
		}

		fmt.Printf("Imported %q (%d questions, id %s)\n", q.Title, len(q.Questions), q.ID)
		return nil
	},
}
