package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"sortmarks/internal/app"
	"sortmarks/internal/clix"
	"sortmarks/internal/fileingest"
)

func newSplitCmd() *cobra.Command {
	splitCmd := &cobra.Command{
		Use:   "split [names...]",
		Short: "Split concatenated repository names into dictionary words",
		Long: `Segments each name greedily: at every position the first dictionary word (in file
order) that prefixes the rest of the name is taken, with no backtracking. Successful names are
written as "original,segmented" lines; names that cannot be fully segmented are reported and skipped.`,
		RunE: runSplit,
	}
	clix.AddSplitFlags(splitCmd.Flags())
	return splitCmd
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	if err := clix.ApplySplitFlags(cmd.Flags(), &cfg.Split); err != nil {
		return err
	}
	if err := cfg.ValidateSplit(); err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool(clix.FlagDryRun)
	if err != nil {
		return err
	}

	res, err := app.Split(cfg.Split, args)
	if err != nil {
		return err
	}

	if dryRun {
		printSplitPreview(cmd.OutOrStdout(), res)
		return nil
	}

	if err := fileingest.WriteLines(cfg.Split.Output, cmd.OutOrStdout(), res.Lines()); err != nil {
		return fmt.Errorf("failed to write renames: %w", err)
	}

	summary := cmd.OutOrStdout()
	if cfg.Split.Output == fileingest.StdStream {
		summary = cmd.ErrOrStderr()
	}
	fmt.Fprintf(summary, "Wrote %d renames to %s", len(res.Renames), cfg.Split.Output)
	if n := len(res.Failures); n > 0 {
		fmt.Fprintf(summary, " (%s)", color.YellowString("%d unmatched", n))
	}
	fmt.Fprintln(summary)
	return nil
}

func printSplitPreview(w io.Writer, res *app.SplitResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Status", "Original", "Segmented", "Unmatched"})
	table.SetAutoWrapText(false)
	for _, r := range res.Renames {
		table.Append([]string{color.GreenString("OK"), r.Original, r.Segmented, ""})
	}
	for _, f := range res.Failures {
		table.Append([]string{color.RedString("FAIL"), f.Input, "", f.Remainder})
	}
	table.Render()
}
