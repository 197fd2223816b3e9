package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List, set or reset knowledge labels",
}

var labelsListCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List labeled items of a sheet (grammar, kanji, vocabulary)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := dataset.ParseKind(args[0])
		if err != nil {
			return err
		}
		var only knowledge.Label
		if s, _ := cmd.Flags().GetString("label"); s != "" {
			if only, err = knowledge.ParseLabel(s); err != nil {
				return err
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		set, err := s.LabelRepo().ReadLabels(cmd.Context(), kind)
		if err != nil {
			return fmt.Errorf("read labels: %w", err)
		}

		keys := make([]string, 0, len(set))
		for k, l := range set {
			if only == knowledge.None || l == only {
				keys = append(keys, k)
			}
		}
		out := cmd.OutOrStdout()
		if len(keys) == 0 {
			fmt.Fprintln(out, "No labels found.")
			return nil
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "%-10s  %s\n", set[k], k)
		}
		return nil
	},
}

var labelsSetCmd = &cobra.Command{
	Use:   "set <kind> <key> <label>",
	Short: "Label one item good, medium or dont_know",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := dataset.ParseKind(args[0])
		if err != nil {
			return err
		}
		label, err := knowledge.ParseLabel(args[2])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.LabelRepo().SetLabel(cmd.Context(), kind, args[1], label); err != nil {
			return fmt.Errorf("set label: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %q → %s\n", kind, args[1], label)
		return nil
	},
}

var labelsResetCmd = &cobra.Command{
	Use:   "reset <kind>",
	Short: "Delete every label of a sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := dataset.ParseKind(args[0])
		if err != nil {
			return err
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to reset %s labels without --yes", kind)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.LabelRepo().ResetLabels(cmd.Context(), kind); err != nil {
			return fmt.Errorf("reset labels: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s labels.\n", kind)
		return nil
	},
}

func init() {
	labelsListCmd.Flags().StringP("label", "l", "", "Only show items with this label")
	labelsResetCmd.Flags().BoolP("yes", "y", false, "Confirm the reset")

	labelsCmd.AddCommand(labelsListCmd)
	labelsCmd.AddCommand(labelsSetCmd)
	labelsCmd.AddCommand(labelsResetCmd)
}
