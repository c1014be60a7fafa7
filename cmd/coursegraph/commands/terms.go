package commands

import (
	"context"
	"coursegraph/internal/scrapers/banner"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(termsCmd)
}

// listTerms prints the terms a class search can be run against.
func listTerms(ctx context.Context, scraper banner.Scraper, w io.Writer) error {
	form, err := scraper.TermForm(ctx)
	if err != nil {
		return err
	}
	field, ok := form.Param(banner.PARAM_TERM)
	if !ok || field.Kind != banner.FIELD_OPTIONS {
		return fmt.Errorf("term form has no %s select", banner.PARAM_TERM)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Term", "Code"})
	for _, opt := range field.Options() {
		if opt.Value == "" {
			continue
		}
		t.AppendRow(table.Row{opt.Label, opt.Value})
	}
	t.Render()
	return nil
}

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Lists the terms that can be passed to coursegraph.",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return usageErrorf("terms takes no arguments")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnvironment(cmd.Context())
		return listTerms(cmd.Context(), env.Scraper, env.Stdout)
	},
}
