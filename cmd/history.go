package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/history"
	"github.com/abhisek/quizdeck/internal/store"
)

var historyTarget int

var historyCmd = &cobra.Command{
	Use:   "history [quiz-id]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Show score history for played quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()

		if cmd.Flags().Changed("target") {
			if len(args) != 1 {
				return fmt.Errorf("a quiz id is required to set a target")
			}
			return setTarget(ctx, st, args[0], historyTarget)
		}
		printed := false
		for _, realm := range store.Realms {
			titles := make(map[string]string)
			quizzes, err := st.QuizRepo(realm).List(ctx)
			if err != nil {
				return err
			}
			for _, q := range quizzes {
				titles[q.ID] = q.Title
			}

			all, err := history.NewService(st.HistoryRepo(realm)).All(ctx)
			if err != nil {
				return err
			}
			for id, h := range all {
				if len(h.Scores) == 0 {
					continue
				}
				title := titles[id]
				if title == "" {
					title = id
				}

				mark := ""
				if h.TargetMet() {
					mark = "  [target met]"
				}
				fmt.Printf("%s  latest %d%%  best %d%%  target %d%%%s\n",
					title, h.Latest().Percentage, h.Best(), h.TargetScore, mark)
				for _, rec := range h.Scores {
					fmt.Printf("  %s  %d/%d (%d%%)\n",
						rec.Timestamp.Format("2006-01-02 15:04"),
						rec.Score, rec.TotalQuestions, rec.Percentage)
				}
				printed = true
			}
		}
		if !printed {
			fmt.Println("No scores recorded yet.")
		}
		return nil
	},
}

// setTarget updates the target percentage for the quiz in whichever
// realm holds it.
func setTarget(ctx context.Context, st *store.Store, quizID string, target int) error {
	for _, realm := range store.Realms {
		q, err := st.QuizRepo(realm).Get(ctx, quizID)
		if err != nil {
			return err
		}
		if q == nil {
			continue
		}
		if err := history.NewService(st.HistoryRepo(realm)).SetTarget(ctx, quizID, target); err != nil {
			return err
		}
		fmt.Printf("Target for %q set to %d%%\n", q.Title, target)
		return nil
	}
	return fmt.Errorf("no quiz with id %q", quizID)
}

func init() {
	historyCmd.Flags().IntVar(&historyTarget, "target", -1, "set the target score percentage (0-100) for a quiz")
}
