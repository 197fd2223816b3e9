package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/jlptquiz/internal/app"
	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/quiz"
)

var askCmd = &cobra.Command{
	Use:   "ask [mode]",
	Short: "Print one question",
	Long: "Print one question as plain text. Mode is one of grammar, sentence,\n" +
		"kanji, kanji_sentence, kanji_mixed or vocabulary (default grammar).\n" +
		"Items labeled good are skipped unless --all is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := quiz.ModeGrammar
		if len(args) == 1 {
			m, err := quiz.ParseMode(args[0])
			if err != nil {
				return err
			}
			mode = m
		}
		all, _ := cmd.Flags().GetBool("all")
		reveal, _ := cmd.Flags().GetBool("reveal")

		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Log.Level = "warn"
		app.NewLogger(cfg.Log)

		engine, err := loadEngine(ctx, cfg)
		if err != nil {
			return err
		}

		var labels knowledge.Set
		if !all {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			labels, err = st.LabelRepo().ReadLabels(ctx, mode.Kind())
			if err != nil {
				return fmt.Errorf("read labels: %w", err)
			}
		}

		q, err := engine.Question(mode, labels)
		if err != nil {
			return err
		}
		printQuestion(cmd.OutOrStdout(), q, reveal)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolP("all", "a", false, "Include items labeled good")
	askCmd.Flags().BoolP("reveal", "r", false, "Print the answer after the question")
}

// printQuestion writes q the way the interactive quiz shows it, with
// lettered options.
func printQuestion(w io.Writer, q *quiz.Question, reveal bool) {
	switch q.Mode {
	case quiz.ModeGrammar:
		fmt.Fprintf(w, "Grammar: %s\n", q.Prompt)
		fmt.Fprintf(w, "Japanese: %s\n", q.Native)
		if q.Example != "" {
			fmt.Fprintf(w, "Example: %s\n", q.Example)
		}
	case quiz.ModeKanji:
		fmt.Fprintf(w, "Kanji: %s\n", q.Prompt)
		if q.Onyomi != "" {
			fmt.Fprintf(w, "Onyomi: %s\n", q.Onyomi)
		}
		if q.Kunyomi != "" {
			fmt.Fprintf(w, "Kunyomi: %s\n", q.Kunyomi)
		}
	case quiz.ModeVocabulary:
		fmt.Fprintf(w, "Word: %s\n", q.Prompt)
		if q.Reading != "" {
			fmt.Fprintf(w, "Reading: %s\n", q.Reading)
		}
		if q.Example != "" {
			fmt.Fprintf(w, "Example: %s\n", q.Example)
		}
	default:
		fmt.Fprintln(w, "Japanese Sentence:")
		fmt.Fprintf(w, "「%s」\n", q.Prompt)
	}

	fmt.Fprintf(w, "\n%s\n", q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(w, "%s. %s\n", quiz.OptionLetter(i), opt)
	}

	if reveal {
		fmt.Fprintf(w, "\nAnswer: %s\n", q.Correct)
	}
}
