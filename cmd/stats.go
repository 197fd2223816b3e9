package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime accuracy and knowledge labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		acc, err := s.EventRepo().AccuracyByMode(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}

		counts := make(map[dataset.Kind]map[knowledge.Label]int, len(dataset.AllKinds))
		for _, kind := range dataset.AllKinds {
			set, err := s.LabelRepo().ReadLabels(ctx, kind)
			if err != nil {
				return fmt.Errorf("read %s labels: %w", kind, err)
			}
			counts[kind] = set.Counts()
		}

		out := cmd.OutOrStdout()
		printAccuracy(out, acc)
		fmt.Fprintln(out)
		printLabelCounts(out, counts)
		return nil
	},
}

func rule(n int) string {
	return strings.Repeat("─", n)
}

func percent(correct, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(correct)/float64(total))
}

func printAccuracy(w io.Writer, acc []store.ModeAccuracy) {
	fmt.Fprintln(w, "Accuracy by Mode")
	if len(acc) == 0 {
		fmt.Fprintln(w, "No answers recorded yet.")
		return
	}
	fmt.Fprintln(w, rule(52))
	fmt.Fprintf(w, "%-18s  %9s  %9s  %9s\n", "Mode", "Answered", "Correct", "Accuracy")
	fmt.Fprintln(w, rule(52))

	var answered, correct int
	for _, m := range acc {
		fmt.Fprintf(w, "%-18s  %9d  %9d  %9s\n",
			quiz.Mode(m.Mode).Label(), m.Answered, m.Correct, percent(m.Correct, m.Answered))
		answered += m.Answered
		correct += m.Correct
	}
	fmt.Fprintln(w, rule(52))
	fmt.Fprintf(w, "%-18s  %9d  %9d  %9s\n", "TOTAL", answered, correct, percent(correct, answered))
}

func printLabelCounts(w io.Writer, counts map[dataset.Kind]map[knowledge.Label]int) {
	fmt.Fprintln(w, "Knowledge Labels")
	fmt.Fprintln(w, rule(52))
	fmt.Fprintf(w, "%-18s  %9s  %9s  %9s\n", "Sheet", "Good", "Medium", "Don't know")
	fmt.Fprintln(w, rule(52))
	for _, kind := range dataset.AllKinds {
		c := counts[kind]
		fmt.Fprintf(w, "%-18s  %9d  %9d  %9d\n",
			kind, c[knowledge.Good], c[knowledge.Medium], c[knowledge.DontKnow])
	}
}
