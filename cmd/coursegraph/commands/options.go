package commands

import (
	"context"
	"coursegraph/internal/scrapers/banner"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(optionsCmd)
}

var optionFlags = []struct {
	flag string
	key  string
}{
	{flag: "--level", key: banner.PARAM_LEVEL},
	{flag: "--subject", key: banner.PARAM_SUBJECT},
	{flag: "--instructor", key: banner.PARAM_INSTRUCTOR},
}

// listOptions prints the values each filter flag accepts for a term.
func listOptions(ctx context.Context, scraper banner.Scraper, term string, w io.Writer) error {
	termForm, err := scraper.TermForm(ctx)
	if err != nil {
		return err
	}
	termCode, err := banner.TermCode(termForm, term)
	if err != nil {
		return err
	}
	searchForm, err := scraper.SearchForm(ctx, termCode)
	if err != nil {
		return err
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Flag", "Name", "Code"})
	for _, f := range optionFlags {
		field, ok := searchForm.Param(f.key)
		if !ok {
			continue
		}
		for _, opt := range field.Options() {
			if opt.Value == banner.Wildcard {
				continue
			}
			t.AppendRow(table.Row{f.flag, opt.Label, opt.Value})
		}
		t.AppendSeparator()
	}
	t.Render()
	return nil
}

var optionsCmd = &cobra.Command{
	Use:   "options <term>",
	Short: "Lists the levels, subjects and instructors of a term.",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usageErrorf("expected exactly one term, got %d arguments", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnvironment(cmd.Context())
		return listOptions(cmd.Context(), env.Scraper, args[0], env.Stdout)
	},
}
