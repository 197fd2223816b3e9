package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished quiz sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if sessionID != "" {
			return printSessionAnswers(cmd, s.EventRepo(), sessionID)
		}

		sessions, err := s.EventRepo().QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-18s  %7s  %8s  %6s  %s\n",
			"Finished", "Mode", "Score", "Accuracy", "Time", "Session")
		fmt.Fprintln(out, rule(100))
		for _, r := range sessions {
			fmt.Fprintf(out, "%-16s  %-18s  %7s  %8s  %6s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				quiz.Mode(r.Mode).Label(),
				fmt.Sprintf("%d/%d", r.CorrectAnswers, r.QuestionsServed),
				percent(r.CorrectAnswers, r.QuestionsServed),
				fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60),
				r.SessionID,
			)
		}
		return nil
	},
}

// printSessionAnswers lists every answer of one session, oldest first.
func printSessionAnswers(cmd *cobra.Command, repo store.EventRepo, sessionID string) error {
	events, err := repo.QueryAnswerEvents(cmd.Context(), store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("query answers: %w", err)
	}

	var answers []store.AnswerEventRecord
	for _, e := range events {
		if strings.HasPrefix(e.SessionID, sessionID) {
			answers = append(answers, e)
		}
	}

	out := cmd.OutOrStdout()
	if len(answers) == 0 {
		return fmt.Errorf("no answers for session %q", sessionID)
	}
	for i := len(answers) - 1; i >= 0; i-- {
		a := answers[i]
		mark := "✓"
		if !a.Correct {
			mark = "✗"
		}
		fmt.Fprintf(out, "%s  %-16s  %s  →  %s", mark, quiz.Mode(a.Mode).Label(), a.Prompt, a.CorrectAnswer)
		if !a.Correct {
			fmt.Fprintf(out, "  (you: %s)", a.GivenAnswer)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	historyCmd.Flags().StringP("session", "s", "", "Show the answers of one session (id or id prefix)")
}
