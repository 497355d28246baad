package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"sortmarks/internal/app"
	"sortmarks/internal/clix"
	"sortmarks/internal/models"
)

func newOrganizeCmd() *cobra.Command {
	organizeCmd := &cobra.Command{
		Use:   "organize <input.html> [output.html]",
		Short: "Group an exported bookmarks file into folders",
		Long: `Reads a Netscape bookmarks export, asks the configured language model to group the
bookmarks into folders batch by batch, and writes the grouped bookmarks file.
Batches whose response cannot be parsed are retried once and then filed under "Uncategorized".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runOrganize,
	}
	clix.AddCategorizationFlags(organizeCmd.Flags())
	return organizeCmd
}

func runOrganize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := GetConfigFromContext(ctx)
	if err != nil {
		return err
	}
	if err := clix.ApplyCategorizationFlags(cmd.Flags(), &cfg.Categorization); err != nil {
		return err
	}
	input, output, err := clix.ParseInputOutput(args, cfg.Categorization.OutputPath)
	if err != nil {
		return err
	}

	appInstance, err := app.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer appInstance.Close()

	report, err := appInstance.Organize(ctx, input, output, time.Now())
	if err != nil {
		return err
	}

	usage, err := appInstance.CostTracker.Usage(ctx)
	if err != nil {
		return fmt.Errorf("failed to read usage: %w", err)
	}
	printOrganizeSummary(cmd.OutOrStdout(), report, usage)
	return nil
}

func printOrganizeSummary(w io.Writer, report *app.OrganizeReport, usage []models.UsageLog) {
	status := color.GreenString("all batches parsed")
	if n := report.Fallbacks(); n > 0 {
		status = color.YellowString("%d of %d batches fell back", n, len(report.Batches))
	}
	fmt.Fprintf(w, "Organized %d bookmarks into %d folders (%s)\n", report.Bookmarks, len(report.Folders), status)
	fmt.Fprintf(w, "Saved to %s\n", report.Output)

	if len(usage) == 0 {
		return
	}

	var totalIn, totalOut int
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Operation", "Provider", "Model", "In Tokens", "Out Tokens", "Cost"})
	table.SetBorder(true)
	for _, u := range usage {
		totalIn += u.InputTokens
		totalOut += u.OutputTokens
		table.Append([]string{
			u.Operation,
			u.ProviderName,
			u.ModelName,
			strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens),
			fmt.Sprintf("$%.6f", u.Cost),
		})
	}
	table.SetFooter([]string{"", "", "Total", strconv.Itoa(totalIn), strconv.Itoa(totalOut), fmt.Sprintf("$%.6f", report.TotalCost)})
	table.Render()
}
