package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robalobadob/lexique/internal/catalog"
	"github.com/robalobadob/lexique/internal/lexicon"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "List lexicon entries matching a query and category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		if len(args) == 1 {
			query = args[0]
		}
		category, _ := cmd.Flags().GetString("category")
		limit, _ := cmd.Flags().GetInt("limit")
		if category != "" && !catalog.IsKnownCategory(category) {
			return fmt.Errorf("unknown category %q", category)
		}
		page := catalog.Page(lexicon.Default(), query, category, limit)
		return printPage(cmd.OutOrStdout(), page)
	},
}

func printPage(out io.Writer, page catalog.PageResult) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTERM\tTRANSLATION\tCATEGORY")
	for _, e := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Term, e.Translation, e.PartOfSpeech)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d\n", len(page.Items), page.Total)
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("query", "q", "", "substring of term or translation (accent-insensitive)")
	searchCmd.Flags().StringP("category", "c", "", "category filter, e.g. verbe or \"nom commun\"")
	searchCmd.Flags().IntP("limit", "n", catalog.PageSize, "maximum entries to print")
}
