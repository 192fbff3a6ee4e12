package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/quizfile"
	"github.com/abhisek/quizdeck/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <quiz-id>",
	Short: "Export a quiz to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		q, err := findQuiz(st, args[0])
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		path, err := quizfile.Export(q, out)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %q to %s\n", q.Title, path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default derives from the quiz title)")
}

// findQuiz looks up a quiz by id across both realms.
func findQuiz(st *store.Store, id string) (*quiz.Quiz, error) {
	ctx := context.Background()
	for _, realm := range store.Realms {
		q, err := st.QuizRepo(realm).Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if q != nil {
			return q, nil
		}
	}
	return nil, fmt.Errorf("no quiz with id %q", id)
}
